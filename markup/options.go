package markup

import (
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vcrobe/editarray/callbacks"
)

// Hiding variants understood by the engine.
const (
	HideClass  = "class"
	HideInline = "inline"
)

// Field describes one property of the records being edited.
type Field struct {
	Name        string   `yaml:"name" validate:"required,jsident"`
	Label       string   `yaml:"label"`
	Type        string   `yaml:"type" validate:"omitempty,oneof=text email url number textarea select"`
	Required    bool     `yaml:"required"`
	Pattern     string   `yaml:"pattern" validate:"omitempty,goregexp"`
	MinLength   int      `yaml:"minLength" validate:"gte=0"`
	MaxLength   int      `yaml:"maxLength" validate:"gte=0"`
	Min         string   `yaml:"min" validate:"omitempty,numeric"`
	Max         string   `yaml:"max" validate:"omitempty,numeric"`
	Placeholder string   `yaml:"placeholder"`
	Choices     []string `yaml:"choices" validate:"required_if=Type select"`
}

// Item is one persisted record: field values keyed by field name.
type Item struct {
	Values  map[string]string `yaml:"values"`
	Deleted bool              `yaml:"deleted"`
}

// Options configures one rendered EditArray.
type Options struct {
	// ArrayID names the array; the container id is edit-array-{ArrayID}.
	ArrayID string `yaml:"id" validate:"required,htmlid"`
	// Prefix is the model-binding prefix of field names, e.g. Orders.
	Prefix string  `yaml:"prefix" validate:"required,bindingprefix"`
	Fields []Field `yaml:"fields" validate:"required,min=1,dive"`
	Items  []Item  `yaml:"items"`

	ReorderEnabled bool   `yaml:"reorderEnabled"`
	MaxItems       int    `yaml:"maxItems" validate:"gte=0"`
	HideStyle      string `yaml:"hideStyle" validate:"omitempty,oneof=class inline"`

	OnUpdate string `yaml:"onUpdate" validate:"omitempty,jsident"`
	OnDone   string `yaml:"onDone" validate:"omitempty,jsident"`
	OnDelete string `yaml:"onDelete" validate:"omitempty,jsident"`

	AddText      string `yaml:"addText"`
	EmptyText    string `yaml:"emptyText"`
	EditText     string `yaml:"editText"`
	DoneText     string `yaml:"doneText"`
	DeleteText   string `yaml:"deleteText"`
	UndeleteText string `yaml:"undeleteText"`
	CancelText   string `yaml:"cancelText"`
}

var (
	validate      *validator.Validate
	htmlIDRe      = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
	bindingPrefix = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Callback names end up in data-on-* attributes and are resolved by name
	// on the client, so only identifiers are accepted.
	_ = validate.RegisterValidation("jsident", func(fl validator.FieldLevel) bool {
		return callbacks.IsValidIdentifier(fl.Field().String())
	})
	_ = validate.RegisterValidation("htmlid", func(fl validator.FieldLevel) bool {
		return htmlIDRe.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("bindingprefix", func(fl validator.FieldLevel) bool {
		return bindingPrefix.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("goregexp", func(fl validator.FieldLevel) bool {
		_, err := regexp.Compile(fl.Field().String())
		return err == nil
	})
	validate.RegisterStructValidation(validateOptions, Options{})
}

// validateOptions checks the rules spanning several fields.
func validateOptions(sl validator.StructLevel) {
	opts := sl.Current().Interface().(Options)
	if opts.MaxItems > 0 && len(opts.Items) > opts.MaxItems {
		sl.ReportError(opts.Items, "items", "Items", "maxitems", fmt.Sprint(opts.MaxItems))
	}
	seen := make(map[string]bool, len(opts.Fields))
	for _, f := range opts.Fields {
		if seen[f.Name] {
			sl.ReportError(opts.Fields, "fields", "Fields", "unique", f.Name)
			return
		}
		seen[f.Name] = true
	}
}

// Validate checks the options. The error, when not nil, wraps
// validator.ValidationErrors.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("markup options: %w", err)
	}
	return nil
}

// Problems lists the validation failures in human-readable form.
func (o Options) Problems() []string {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, describe(fe))
	}
	return out
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Options.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "required_if":
		return fmt.Sprintf("%s is required when %s", field, fe.Param())
	case "jsident":
		return fmt.Sprintf("%s %q is not a valid callback identifier", field, fe.Value())
	case "htmlid":
		return fmt.Sprintf("%s %q is not a valid element id", field, fe.Value())
	case "bindingprefix":
		return fmt.Sprintf("%s %q is not a valid binding prefix", field, fe.Value())
	case "goregexp":
		return fmt.Sprintf("%s %q is not a valid regular expression", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "maxitems":
		return fmt.Sprintf("%s has more entries than maxItems (%s)", field, fe.Param())
	case "unique":
		return fmt.Sprintf("%s contains %q more than once", field, fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// LoadOptions decodes options from YAML. Unknown keys are rejected.
func LoadOptions(r io.Reader) (Options, error) {
	var opts Options
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil {
		if err == io.EOF {
			return opts, nil
		}
		return opts, fmt.Errorf("decode markup options: %w", err)
	}
	return opts, nil
}
