// Zaparoo Paste
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Paste.
//
// Zaparoo Paste is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Paste is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Paste.  If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/ZaparooProject/zaparoo-paste/pkg/helpers/linuxinput/keyboardmap"
	"github.com/go-playground/validator/v10"
)

// ValidationError lists every invalid config field.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return strings.Join(e.Fields, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(tomlFieldName)
	_ = v.RegisterValidation("key", validateKey)
	_ = v.RegisterValidation("combo", validateCombo)
	return v
}

// tomlFieldName reports fields by their config file names.
func tomlFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("toml"), ",")
	if name == "-" {
		return ""
	}
	return name
}

func validateKey(fl validator.FieldLevel) bool {
	_, ok := keyboardmap.Lookup(fl.Field().String())
	return ok
}

func validateCombo(fl validator.FieldLevel) bool {
	_, err := keyboardmap.ParseCombo(fl.Field().String())
	return err == nil
}

// Validate checks config values against their field constraints.
func Validate(vals *Values) error {
	if err := validate.Struct(vals); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			ve := &ValidationError{Fields: make([]string, len(validationErrors))}
			for i, fe := range validationErrors {
				ve.Fields[i] = formatValidationError(fe)
			}
			return ve
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

func formatValidationError(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "key":
		return fmt.Sprintf("%s: %v", field, keyboardmap.UnknownKeyError(fmt.Sprint(fe.Value())))
	case "combo":
		_, err := keyboardmap.ParseCombo(fmt.Sprint(fe.Value()))
		return fmt.Sprintf("%s: %v", field, err)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
