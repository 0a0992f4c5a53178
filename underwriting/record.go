package underwriting

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

type PropertyType string

const (
	SingleFamily PropertyType = "Single Family"
	Multifamily  PropertyType = "Multifamily"
	Office       PropertyType = "Office"
	Retail       PropertyType = "Retail"
	Industrial   PropertyType = "Industrial"
	Land         PropertyType = "Land"
)

var PropertyTypes = []PropertyType{SingleFamily, Multifamily, Office, Retail, Industrial, Land}

// Record is the input of a report. Currency fields are whole dollars,
// percentages are 0-100. Unbounded amounts are limited to +/-1e15, which also
// rejects NaN and Inf.
type Record struct {
	Address           string       `json:"address" yaml:"address" validate:"required"`
	Type              PropertyType `json:"type" yaml:"type" validate:"required,oneof='Single Family' Multifamily Office Retail Industrial Land"`
	YearBuilt         int          `json:"yearBuilt" yaml:"yearBuilt" validate:"gte=0"`
	SqFt              int          `json:"sqFt" yaml:"sqFt" validate:"gte=0"`
	Units             int          `json:"units" yaml:"units" validate:"gte=0"`
	Value             float64      `json:"value" yaml:"value" validate:"gte=-1e15,lte=1e15"`
	GrossRent         float64      `json:"grossRent" yaml:"grossRent" validate:"gte=-1e15,lte=1e15"`
	Vacancy           float64      `json:"vacancy" yaml:"vacancy" validate:"gte=0,lte=100"`
	Expenses          float64      `json:"expenses" yaml:"expenses" validate:"gte=-1e15,lte=1e15"`
	NOI               float64      `json:"noi" yaml:"noi" validate:"gte=-1e15,lte=1e15"`
	CapRate           float64      `json:"capRate" yaml:"capRate" validate:"gte=-1e15,lte=1e15"`
	DSCR              float64      `json:"dscr" yaml:"dscr" validate:"gte=-1e15,lte=1e15"`
	CrimeScore        float64      `json:"crimeScore" yaml:"crimeScore" validate:"gte=0,lte=10"`
	WalkScore         float64      `json:"walkScore" yaml:"walkScore" validate:"gte=0,lte=100"`
	MedianIncome      float64      `json:"medianIncome" yaml:"medianIncome" validate:"gte=-1e15,lte=1e15"`
	PopulationDensity int          `json:"populationDensity" yaml:"populationDensity" validate:"gte=0"`
	SchoolRating      float64      `json:"schoolRating" yaml:"schoolRating" validate:"gte=0,lte=10"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks required fields and score ranges
func (r Record) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return fmt.Errorf("invalid record: %w", err)
	}
	msgs := lo.Map(fields, func(f validator.FieldError, _ int) string {
		if f.Param() == "" {
			return fmt.Sprintf("%s is %s", f.Field(), f.Tag())
		}
		return fmt.Sprintf("%s must be %s %s", f.Field(), f.Tag(), f.Param())
	})
	return fmt.Errorf("invalid record: %s: %w", strings.Join(msgs, ", "), err)
}
