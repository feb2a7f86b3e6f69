package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/modelpeek/go-modelpeek/inputs"
)

func inputsCmd(cfg *InputsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Inputs.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.File == "" {
		for _, name := range inputs.Available() {
			fmt.Fprintln(cc.Out, name)
		}
		return nil
	}
	in, err := inputs.Get("file", nullOwner{}, inputs.WithFile(cfg.File))
	if err != nil {
		return err
	}
	ctx := context.Background()
	fields, err := in.AllFields(ctx)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		fields = fields.Sel(args[0])
	}
	var d []byte
	if cfg.outFormat().IsJSON() {
		d, err = json.MarshalIndent(fields, "", "  ")
		if err == nil {
			d = append(d, '\n')
		}
	} else {
		d, err = yaml.Marshal(fields)
	}
	if err != nil {
		return err
	}
	_, err = cc.Out.Write(d)
	return err
}

// nullOwner wants nothing; file inputs ignore the owner's requests.
type nullOwner struct{}

func (nullOwner) ParamSfc() []string              { return nil }
func (nullOwner) ParamLevelPl() ([]string, []int) { return nil, nil }
func (nullOwner) ParamLevelMl() ([]string, []int) { return nil, nil }
func (nullOwner) Grid() []float64                 { return nil }
func (nullOwner) Area() []float64                 { return nil }
func (nullOwner) Datetimes() []inputs.Datetime    { return nil }
func (nullOwner) Retrieve() inputs.Request        { return nil }
func (nullOwner) PatchRequest(inputs.Request)     {}
