package pages

import (
	"reflect"
	"strconv"
	"strings"
)

// formValues flattens a bound form DTO into field-name → submitted
// value so a reopened dialog can refill its inputs. Password fields are
// never echoed back.
func formValues(v any) map[string]string {
	out := map[string]string{}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return out
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		tag := rt.Field(i).Tag.Get("form")
		if tag == "" || tag == "-" {
			continue
		}
		if strings.Contains(strings.ToLower(tag), "password") {
			continue
		}
		out[tag] = stringify(rv.Field(i))
	}
	return out
}

func stringify(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Int() == 0 {
			return ""
		}
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Float32, reflect.Float64:
		if v.Float() == 0 {
			return ""
		}
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		if v.Bool() {
			return "true"
		}
		return ""
	case reflect.Pointer:
		// a set pointer is an explicit value, so zero renders as "0"
		if v.IsNil() {
			return ""
		}
		e := v.Elem()
		switch e.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return strconv.FormatInt(e.Int(), 10)
		case reflect.Float32, reflect.Float64:
			return strconv.FormatFloat(e.Float(), 'f', -1, 64)
		default:
			return stringify(e)
		}
	default:
		return ""
	}
}
