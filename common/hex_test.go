// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package common

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestBytesToHex(t *testing.T) {
	if s := BytesToHex([]byte{0x00, 0x0f, 0xab, 0x5a}); s != "000FAB5A" {
		t.Fatal(s)
	}
	if s := BytesToHex(nil); s != "" {
		t.Fatal(s)
	}
}

func TestHexToBytes(t *testing.T) {
	for _, test := range []struct {
		in      string
		want    []byte
		wantErr bool
	}{
		{in: "000FAB5A", want: []byte{0x00, 0x0f, 0xab, 0x5a}},
		{in: "000fab5a", want: []byte{0x00, 0x0f, 0xab, 0x5a}},
		{in: "", want: []byte{}},
		{in: "ABC", wantErr: true},
		{in: "G0", wantErr: true},
	} {
		t.Run(test.in, func(t *testing.T) {
			got, err := HexToBytes(test.in)
			if test.wantErr {
				if !errors.Is(err, ErrMalformedHex) {
					t.Fatalf("expected ErrMalformedHex, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIntToHex(t *testing.T) {
	for _, test := range []struct {
		v       uint64
		nibbles int
		want    string
	}{
		{0xa, 1, "A"},
		{0x5, 2, "05"},
		{0x1e0, 4, "01E0"},
		{0xdeadbeef, 8, "DEADBEEF"},
		{0x12c, 2, "2C"},
		{0x28, 16, "0000000000000028"},
	} {
		if got := IntToHex(test.v, test.nibbles); got != test.want {
			t.Errorf("IntToHex(%#x, %d) = %q, want %q", test.v, test.nibbles, got, test.want)
		}
	}
}

func TestHexToByte(t *testing.T) {
	if b, err := HexToByte("9f"); err != nil || b != 0x9f {
		t.Fatalf("HexToByte() = %#x, %v", b, err)
	}
	for _, s := range []string{"", "1", "123", "zz"} {
		if _, err := HexToByte(s); !errors.Is(err, ErrMalformedHex) {
			t.Errorf("HexToByte(%q): %v", s, err)
		}
	}
}

func TestLEHexToUint32(t *testing.T) {
	for _, test := range []struct {
		in   string
		want uint32
	}{
		{"01000000", 1},
		{"FFFFFFFF", 4294967295},
		{"78563412", 0x12345678},
		{"10270000", 10000},
	} {
		got, err := LEHexToUint32(test.in)
		if err != nil {
			t.Fatal(err)
		}
		if got != test.want {
			t.Errorf("LEHexToUint32(%q) = %d, want %d", test.in, got, test.want)
		}
	}
	if _, err := LEHexToUint32("0100"); !errors.Is(err, ErrMalformedHex) {
		t.Fatal(err)
	}
}
