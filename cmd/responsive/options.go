package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/zoobzio/responsive"
)

// validate is the shared validator instance.
var validate = validator.New()

type commonOptions struct {
	SpecPath string `validate:"omitempty,file"`
	Format   string `validate:"oneof=yaml json"`
	Verbose  bool
}

type checkOptions struct {
	*commonOptions
	ValuesPath string `validate:"omitempty,file"`
}

type resolveOptions struct {
	*commonOptions
	ValuesPath string  `validate:"required,file"`
	Width      float64 `validate:"gte=0"`
}

type watchOptions struct {
	*commonOptions
	ValuesPath string        `validate:"required,file"`
	CellWidth  float64       `validate:"gt=0"`
	Debounce   time.Duration `validate:"gte=0"`
}

func validateOptions(opts any) error {
	if err := validate.Struct(opts); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

func (o *commonOptions) codec() responsive.Codec {
	if o.Format == "json" {
		return responsive.JSONCodec{}
	}
	return responsive.YAMLCodec{}
}

// loadSpec reads the spec document. No path selects the default table.
func (o *commonOptions) loadSpec() (responsive.Spec, error) {
	if o.SpecPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(o.SpecPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec: %w", err)
	}
	return responsive.DecodeSpec(data, o.codec())
}

func (o *commonOptions) loadValues(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values: %w", err)
	}
	return responsive.DecodeValues[any](data, o.codec())
}
