// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package snapshot

import (
	"encoding/xml"
	"strings"

	"golang.org/x/text/cases"

	apperrors "github.com/NVIDIA/deviceinfo/pkg/errors"
)

// Format is the closed set of textual renderings a Snapshot supports.
type Format int

const (
	// FormatUnknown is never returned by ParseFormat without an error.
	FormatUnknown Format = iota
	// FormatPlainText renders the joined IPv4 address list.
	FormatPlainText
	// FormatXML renders every field as a fixed-schema XML document.
	FormatXML
	// FormatJSON renders the legacy "ipv4: <addresses>" string.
	FormatJSON
)

// Formats lists every supported format in presentation order.
var Formats = []Format{
	FormatPlainText,
	FormatXML,
	FormatJSON,
}

// ErrUnsupportedFormat matches, via errors.Is, every error returned for a
// format identifier outside the supported set.
var ErrUnsupportedFormat = apperrors.New(apperrors.ErrCodeUnsupportedFormat, "unsupported format")

// String returns the canonical format identifier.
func (f Format) String() string {
	switch f {
	case FormatPlainText:
		return "text/plain"
	case FormatXML:
		return "xml"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ContentType returns the MIME type used when serving the rendering over HTTP.
// The legacy json rendering is not JSON, so it is served as plain text.
func (f Format) ContentType() string {
	switch f {
	case FormatXML:
		return "application/xml; charset=utf-8"
	case FormatPlainText, FormatJSON:
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// SupportedFormats returns the fixed set of format identifiers accepted by
// Render, for callers validating requests up front.
func SupportedFormats() []string {
	out := make([]string, 0, len(Formats))
	for _, f := range Formats {
		out = append(out, f.String())
	}
	return out
}

// ParseFormat resolves a format identifier, ignoring case and surrounding
// whitespace. Unknown identifiers are rejected, never defaulted.
func ParseFormat(id string) (Format, error) {
	folded := cases.Fold().String(strings.TrimSpace(id))
	for _, f := range Formats {
		if folded == f.String() {
			return f, nil
		}
	}
	return FormatUnknown, unsupported(id)
}

// Render produces the snapshot in the format named by id.
func Render(s Snapshot, id string) (string, error) {
	f, err := ParseFormat(id)
	if err != nil {
		return "", err
	}
	return f.Render(s)
}

// Render produces the snapshot in format f.
func (f Format) Render(s Snapshot) (string, error) {
	switch f {
	case FormatPlainText:
		return joinAddrs(s.ipv4), nil
	case FormatXML:
		return renderXML(s), nil
	case FormatJSON:
		return "ipv4: " + joinAddrs(s.ipv4), nil
	default:
		return "", unsupported(f.String())
	}
}

// xmlElements names the XML element for each position of the field sequence.
var xmlElements = [FieldCount]string{
	"ip4",
	"ip6",
	"mac",
	"osVersion",
	"apiLevel",
	"deviceType",
	"product",
	"brand",
	"manufacturer",
	"serial",
	"board",
}

func renderXML(s Snapshot) string {
	var b strings.Builder
	b.WriteString("<device>")
	for i, v := range s.Fields() {
		name := xmlElements[i]
		b.WriteString("    <")
		b.WriteString(name)
		b.WriteString(">")
		// strings.Builder never fails a write
		_ = xml.EscapeText(&b, []byte(v))
		b.WriteString("</")
		b.WriteString(name)
		b.WriteString(">")
	}
	b.WriteString("</device>")
	return b.String()
}

func unsupported(id string) error {
	return apperrors.NewWithContext(apperrors.ErrCodeUnsupportedFormat,
		"unsupported format: "+id, map[string]any{
			"format":    id,
			"supported": SupportedFormats(),
		})
}
