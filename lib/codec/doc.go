// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration shared by
// everything that writes binary state.
//
// JSON and YAML are for what people read and write: definition files,
// the config file, the printed result. CBOR is for what only the
// program reads back: the saved selection state. The encoder uses Core
// Deterministic Encoding (RFC 8949 §4.2), so the same logical data
// always produces identical bytes.
//
// For buffers:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For files:
//
//	encoder := codec.NewEncoder(file)
//	decoder := codec.NewDecoder(file)
//
// # Struct Tag Rules
//
//   - `cbor` tag: the type is only ever serialized as CBOR (state files).
//   - `json` tag: the type may be serialized as both JSON and CBOR.
//     fxamacker/cbor v2 reads `json` tags when `cbor` tags are absent.
//
// Never use both on the same field.
package codec
