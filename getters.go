// seehuhn.de/go/pdfdoc - a library for reading, writing and laying out PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pdf

import (
	"errors"
)

// Getter represents a source of indirect objects, for example a PDF file
// opened for reading or the [Arena] of a document under construction.
type Getter interface {
	// Get returns the object with the given reference.  If the object
	// does not exist, (nil, nil) is returned.
	Get(ref Reference) (Object, error)
}

// maxRefChain limits the length of reference chains followed by [Resolve].
const maxRefChain = 16

var errRefChain = errors.New("reference chain too long")

// Resolve resolves references to indirect objects.
//
// If obj is a [Reference], the function reads the corresponding object from
// the file and returns the result.  If obj is not a [Reference], it is
// returned unchanged.  The function recursively follows chains of
// references until it resolves to a non-reference object.
func Resolve(r Getter, obj Object) (Object, error) {
	for range maxRefChain {
		ref, isRef := obj.(Reference)
		if !isRef {
			return obj, nil
		}
		if r == nil {
			return nil, nil
		}
		var err error
		obj, err = r.Get(ref)
		if err != nil {
			return nil, err
		}
	}
	return nil, errRefChain
}

// GetDict resolves references and makes sure the result is a dictionary.
// Null objects give (nil, nil).
func GetDict(r Getter, obj Object) (*Dict, error) {
	obj, err := Resolve(r, obj)
	if err != nil || obj == nil {
		return nil, err
	}
	switch x := obj.(type) {
	case *Dict:
		return x, nil
	default:
		return nil, &TypeMismatchError{Want: "dictionary", Got: obj}
	}
}

// GetStream resolves references and makes sure the result is a stream.
// Null objects give (nil, nil).
func GetStream(r Getter, obj Object) (*Stream, error) {
	obj, err := Resolve(r, obj)
	if err != nil || obj == nil {
		return nil, err
	}
	x, ok := obj.(*Stream)
	if !ok {
		return nil, &TypeMismatchError{Want: "stream", Got: obj}
	}
	return x, nil
}

// GetArray resolves references and makes sure the result is an array.
// Null objects give (nil, nil).
func GetArray(r Getter, obj Object) (Array, error) {
	obj, err := Resolve(r, obj)
	if err != nil || obj == nil {
		return nil, err
	}
	x, ok := obj.(Array)
	if !ok {
		return nil, &TypeMismatchError{Want: "array", Got: obj}
	}
	return x, nil
}

// GetName resolves references and makes sure the result is a name.
func GetName(r Getter, obj Object) (Name, error) {
	obj, err := Resolve(r, obj)
	if err != nil || obj == nil {
		return "", err
	}
	x, ok := obj.(Name)
	if !ok {
		return "", &TypeMismatchError{Want: "name", Got: obj}
	}
	return x, nil
}

// GetString resolves references and makes sure the result is a string.
func GetString(r Getter, obj Object) (String, error) {
	obj, err := Resolve(r, obj)
	if err != nil || obj == nil {
		return nil, err
	}
	x, ok := obj.(String)
	if !ok {
		return nil, &TypeMismatchError{Want: "string", Got: obj}
	}
	return x, nil
}

// GetInteger resolves references and makes sure the result is an integer.
// Reals with an integral value are accepted.
func GetInteger(r Getter, obj Object) (Integer, error) {
	obj, err := Resolve(r, obj)
	if err != nil || obj == nil {
		return 0, err
	}
	switch x := obj.(type) {
	case Integer:
		return x, nil
	case Real:
		if float64(x) == float64(int64(x)) {
			return Integer(x), nil
		}
	}
	return 0, &TypeMismatchError{Want: "integer", Got: obj}
}

// GetNumber resolves references and returns the value of an integer or
// real object.
func GetNumber(r Getter, obj Object) (float64, error) {
	obj, err := Resolve(r, obj)
	if err != nil || obj == nil {
		return 0, err
	}
	x, ok := asNumber(obj)
	if !ok {
		return 0, &TypeMismatchError{Want: "number", Got: obj}
	}
	return x, nil
}

// GetBool resolves references and makes sure the result is a boolean.
func GetBool(r Getter, obj Object) (Bool, error) {
	obj, err := Resolve(r, obj)
	if err != nil || obj == nil {
		return false, err
	}
	x, ok := obj.(Bool)
	if !ok {
		return false, &TypeMismatchError{Want: "boolean", Got: obj}
	}
	return x, nil
}

// MustDict returns obj as a dictionary.  The function panics with a
// [*TypeMismatchError] if obj is of a different type.  This is meant for
// objects constructed by the caller, where a wrong type indicates a bug.
func MustDict(obj Object) *Dict {
	x, ok := obj.(*Dict)
	if !ok {
		panic(&TypeMismatchError{Want: "dictionary", Got: obj})
	}
	return x
}

// MustArray returns obj as an array, see [MustDict].
func MustArray(obj Object) Array {
	x, ok := obj.(Array)
	if !ok {
		panic(&TypeMismatchError{Want: "array", Got: obj})
	}
	return x
}

// MustStream returns obj as a stream, see [MustDict].
func MustStream(obj Object) *Stream {
	x, ok := obj.(*Stream)
	if !ok {
		panic(&TypeMismatchError{Want: "stream", Got: obj})
	}
	return x
}
