package catalog

import "fmt"

// instruments is the static catalog, in the order the selector shows them.
// The HP 3478A entries are raw front-panel codes; "Write to Display" carries
// the adapter's literal "wrt 723 " routing prefix as part of its template,
// it is not special-cased anywhere.
var instruments = []Instrument{
	{
		Name: "Power Supply",
		Subcommands: []Subcommand{
			{
				Name:   "Set Voltage",
				Prefix: "PS:Set Voltage",
				Params: []Parameter{
					{Name: "Voltage (V)", Kind: Numeric, Lead: " "},
					{Name: "Channel", Kind: Numeric, Lead: " "},
				},
			},
			{
				Name:   "Set Current Limit",
				Prefix: "PS:Set Current Limit",
				Params: []Parameter{
					{Name: "Current (A)", Kind: Numeric, Lead: " "},
					{Name: "Channel", Kind: Numeric, Lead: " "},
				},
			},
			{
				Name:   "Output ON/OFF",
				Prefix: "PS:Output ON/OFF",
				Params: []Parameter{
					{Name: "State (ON/OFF)", Kind: FreeText, Lead: " "},
				},
			},
			{
				Name:   "Measure Output",
				Prefix: "PS:Measure Output",
			},
		},
	},
	{
		Name: "Chroma DC Load",
		Subcommands: []Subcommand{
			{
				Name:   "Set Current",
				Prefix: "LOAD:Set Current",
				Params: []Parameter{
					{Name: "Current (A)", Kind: Numeric, Lead: " "},
					{Name: "Mode (CC/CR/CP)", Kind: FreeText, Lead: " "},
				},
			},
			{
				Name:   "Set Voltage",
				Prefix: "LOAD:Set Voltage",
				Params: []Parameter{
					{Name: "Voltage (V)", Kind: Numeric, Lead: " "},
				},
			},
			{
				Name:   "Load ON/OFF",
				Prefix: "LOAD:Load ON/OFF",
				Params: []Parameter{
					{Name: "State (ON/OFF)", Kind: FreeText, Lead: " "},
				},
			},
			{
				Name:   "Measure Input",
				Prefix: "LOAD:Measure Input",
			},
		},
	},
	{
		Name: "HP 3478A Multimeter",
		Subcommands: []Subcommand{
			{Name: "HOME Command", Prefix: "H0"},
			{Name: "Measure DC Voltage", Prefix: "H1", Kind: KindDCVolts},
			{Name: "Measure AC Volts", Prefix: "H2", Kind: KindACVolts},
			{Name: "Measure 2-Wire Ohms", Prefix: "H3"},
			{Name: "Measure 4-Wire Ohms", Prefix: "H4"},
			{Name: "Measure DC Current", Prefix: "H5", Kind: KindDCCurrent},
			{Name: "Measure AC Current", Prefix: "H6", Kind: KindACCurrent},
			{Name: "Measure Extended Ohms", Prefix: "H7"},
			{Name: "Clear Display", Prefix: "D1"},
			{
				Name:   "Write to Display",
				Prefix: "wrt 723 D2",
				Params: []Parameter{
					// Display holds 12 characters; the instrument truncates
					// beyond that, so reject it up front.
					{Name: "Display Text", Kind: FreeText, Width: 12},
				},
			},
			{
				Name:   "Set SRQ Mask",
				Prefix: "M",
				Params: []Parameter{
					{Name: "Mask (2 hex digits)", Kind: HexCode, Width: 2},
				},
			},
			{Name: "Read IDN", Prefix: "*IDN?"},
		},
	},
}

// Instruments returns the catalog in selector order.
func Instruments() []Instrument {
	return instruments
}

// InstrumentNames returns the catalog's instrument names in selector order.
func InstrumentNames() []string {
	names := make([]string, len(instruments))
	for i := range instruments {
		names[i] = instruments[i].Name
	}
	return names
}

// Find resolves an instrument by exact name.
func Find(name string) (*Instrument, error) {
	for i := range instruments {
		if instruments[i].Name == name {
			return &instruments[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownInstrument, name)
}

// Find resolves a subcommand of this instrument by exact name.
func (inst *Instrument) Find(name string) (*Subcommand, error) {
	for i := range inst.Subcommands {
		if inst.Subcommands[i].Name == name {
			return &inst.Subcommands[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q (%s)", ErrUnknownSubcommand, name, inst.Name)
}

// SubcommandNames returns the instrument's subcommand names in menu order,
// for populating a selector.
func (inst *Instrument) SubcommandNames() []string {
	names := make([]string, len(inst.Subcommands))
	for i, sub := range inst.Subcommands {
		names[i] = sub.Name
	}
	return names
}
