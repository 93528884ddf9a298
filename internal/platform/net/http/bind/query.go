package bind

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	perr "reviewlens/internal/platform/errors"
)

// ParseQuery fills T from the request query string and validates it
// fields opt in with a `query:"name"` tag; supported kinds are string, bool, ints and floats
// a `default:"v"` tag applies when the parameter is absent or empty
func ParseQuery[T any](r *http.Request) (T, error) {
	var dst T
	rv := reflect.ValueOf(&dst).Elem()
	if rv.Kind() != reflect.Struct {
		return dst, perr.Internalf("query target must be a struct, got %s", rv.Kind())
	}
	q := r.URL.Query()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name := sf.Tag.Get("query")
		if name == "" || name == "-" || !sf.IsExported() {
			continue
		}
		val := strings.TrimSpace(q.Get(name))
		if val == "" {
			val = sf.Tag.Get("default")
		}
		if val == "" {
			continue
		}
		if err := setField(rv.Field(i), val); err != nil {
			return dst, perr.WithField(perr.Validationf("%s must be a valid %s", name, sf.Type.Kind()), name)
		}
	}
	if err := Struct(dst); err != nil {
		var zero T
		return zero, err
	}
	return dst, nil
}

func setField(f reflect.Value, val string) error {
	switch f.Kind() {
	case reflect.String:
		f.SetString(val)
	case reflect.Bool:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return err
		}
		f.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(val, 10, f.Type().Bits())
		if err != nil {
			return err
		}
		f.SetInt(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(val, f.Type().Bits())
		if err != nil {
			return err
		}
		f.SetFloat(n)
	default:
		return strconv.ErrSyntax
	}
	return nil
}
