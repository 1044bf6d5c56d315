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
	"bytes"
	"io"
	"log/slog"
	"strconv"
)

// Stream represent a stream object in a PDF file.
//
// A stream holds two buffers: the raw data as stored in the file, and the
// data obtained by applying the filters listed in the /Filter entry of the
// dictionary.  Each buffer is computed from the other on demand.
type Stream struct {
	Dict *Dict

	raw     []byte
	decoded []byte

	// hasRaw and hasDecoded record which of the buffers are valid.
	hasRaw     bool
	hasDecoded bool
}

// NewStream returns a stream with the given dictionary and raw (encoded)
// data.  The data slice is used directly, without copying.
func NewStream(dict *Dict, raw []byte) *Stream {
	if dict == nil {
		dict = NewDict()
	}
	dict.Set("Length", Integer(len(raw)))
	return &Stream{Dict: dict, raw: raw, hasRaw: true}
}

// NewDecodedStream returns a stream with the given decoded data.  The data
// is encoded using the filters listed in the dictionary when the raw data is
// first needed.
func NewDecodedStream(dict *Dict, data []byte) *Stream {
	if dict == nil {
		dict = NewDict()
	}
	return &Stream{Dict: dict, decoded: data, hasDecoded: true}
}

// Decoded returns the decoded stream data.
// The returned slice must not be modified; use [Stream.SetDecoded] instead.
func (x *Stream) Decoded() ([]byte, error) {
	if x.hasDecoded {
		return x.decoded, nil
	}
	filters, err := filtersOf(x.Dict)
	if err != nil {
		return nil, err
	}
	var r io.Reader = bytes.NewReader(x.raw)
	for _, f := range filters {
		r, err = f.Decode(r)
		if err != nil {
			return nil, err
		}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		name := Name("")
		if len(filters) > 0 {
			name = filters[len(filters)-1].Name()
		}
		if _, ok := err.(*FilterError); !ok {
			err = &FilterError{Filter: name, Err: err}
		}
		return nil, err
	}
	x.decoded = data
	x.hasDecoded = true
	return data, nil
}

// DecodedOrEmpty returns the decoded stream data.  If decoding fails, the
// problem is logged and an empty slice is returned.  This is used for
// content streams, where damaged data should not prevent a page from
// being processed.
func (x *Stream) DecodedOrEmpty(logger *slog.Logger) []byte {
	data, err := x.Decoded()
	if err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("cannot decode stream, treating as empty",
			slog.String("error", err.Error()))
		return nil
	}
	return data
}

// SetDecoded replaces the decoded stream data.  The raw data is
// recomputed when it is next needed.
func (x *Stream) SetDecoded(data []byte) {
	x.decoded = data
	x.hasDecoded = true
	x.raw = nil
	x.hasRaw = false
}

// Touched reports whether the decoded data was changed since the raw data
// was last computed.
func (x *Stream) Touched() bool {
	return !x.hasRaw
}

// Raw returns the encoded stream data, re-encoding the decoded data if
// needed.  The /Length entry of the dictionary is updated.
//
// Filters which cannot be used for encoding are replaced by /FlateDecode.
func (x *Stream) Raw() ([]byte, error) {
	if x.hasRaw {
		return x.raw, nil
	}

	filters, err := filtersOf(x.Dict)
	if err != nil {
		return nil, err
	}
	for _, f := range filters {
		if f.Name() != "FlateDecode" {
			filters = []Filter{&FilterFlate{}}
			x.Dict.Set("Filter", Name("FlateDecode"))
			x.Dict.Delete("DecodeParms")
			break
		}
		if ff := f.(*FilterFlate); ff.Params != nil && ff.Params.Predictor > 1 {
			filters = []Filter{&FilterFlate{}}
			x.Dict.Delete("DecodeParms")
			break
		}
	}

	buf := &bytes.Buffer{}
	var w io.WriteCloser = nopCloser{buf}
	for _, f := range filters {
		w, err = f.Encode(w)
		if err != nil {
			return nil, err
		}
	}
	_, err = w.Write(x.decoded)
	if err == nil {
		err = w.Close()
	}
	if err != nil {
		return nil, &FilterError{Filter: "FlateDecode", Err: err}
	}

	x.raw = buf.Bytes()
	x.hasRaw = true
	x.Dict.Set("Length", Integer(len(x.raw)))
	return x.raw, nil
}

func (x *Stream) String() string {
	res := "<"
	if tp, ok := x.Dict.Get("Type").(Name); ok {
		res += string(tp) + " "
	}
	res += "Stream"
	if x.hasRaw {
		res += ", " + strconv.Itoa(len(x.raw)) + " bytes"
	}
	switch filter := x.Dict.Get("Filter").(type) {
	case Name:
		res += ", " + string(filter)
	case Array:
		for _, f := range filter {
			if name, ok := f.(Name); ok {
				res += ", " + string(name)
			}
		}
	}
	return res + ">"
}

// PDF implements the [Object] interface.
//
// Inside a complete file, streams are always indirect objects.  When a
// stream is encountered as a direct value, a reference to the object
// number assigned by the writer is written instead.
func (x *Stream) PDF(w io.Writer) error {
	if pw, ok := w.(*posWriter); ok && pw.top != x {
		if ref, ok := pw.direct[x]; ok {
			_, err := w.Write([]byte(strconv.FormatUint(uint64(ref.Number()), 10) + " 0 R"))
			return err
		}
	}

	raw, err := x.Raw()
	if err != nil {
		return err
	}
	x.Dict.Set("Length", Integer(len(raw)))

	err = x.Dict.PDF(w)
	if err != nil {
		return err
	}
	_, err = w.Write([]byte("\nstream\n"))
	if err != nil {
		return err
	}
	_, err = w.Write(raw)
	if err != nil {
		return err
	}
	_, err = w.Write([]byte("\nendstream"))
	return err
}
