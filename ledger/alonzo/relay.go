// Copyright 2025 Blink Labs Software
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

package alonzo

import (
	"fmt"
	"net"

	"github.com/blinklabs-io/alonzo-codec/cbor"
)

const (
	PoolRelayTypeSingleHostAddress = 0
	PoolRelayTypeSingleHostName    = 1
	PoolRelayTypeMultiHostName     = 2
)

// PoolRelay is one of the ways a stake pool advertises how to reach it
type PoolRelay interface {
	isPoolRelay()
	Type() uint
	encode(*cbor.StreamEncoder) error
}

// SingleHostAddr is [0, port / null, ipv4 / null, ipv6 / null]
type SingleHostAddr struct {
	Port *uint32
	Ipv4 net.IP
	Ipv6 net.IP
}

// SingleHostName is [1, port / null, dns name]
type SingleHostName struct {
	Port    *uint32
	DnsName string
}

// MultiHostName is [2, dns name], resolved through SRV records
type MultiHostName struct {
	DnsName string
}

func (SingleHostAddr) isPoolRelay() {}
func (SingleHostName) isPoolRelay() {}
func (MultiHostName) isPoolRelay()  {}

func (SingleHostAddr) Type() uint { return PoolRelayTypeSingleHostAddress }
func (SingleHostName) Type() uint { return PoolRelayTypeSingleHostName }
func (MultiHostName) Type() uint  { return PoolRelayTypeMultiHostName }

func encodePort(e *cbor.StreamEncoder, port *uint32) {
	if port == nil {
		e.EncodeNull()
		return
	}
	e.EncodeUint(uint64(*port))
}

func encodeIp(e *cbor.StreamEncoder, ip net.IP) {
	if ip == nil {
		e.EncodeNull()
		return
	}
	e.EncodeBytes(ip)
}

func (r SingleHostAddr) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(4)
	e.EncodeUint(PoolRelayTypeSingleHostAddress)
	encodePort(e, r.Port)
	encodeIp(e, r.Ipv4)
	encodeIp(e, r.Ipv6)
	return nil
}

func (r SingleHostName) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(3)
	e.EncodeUint(PoolRelayTypeSingleHostName)
	encodePort(e, r.Port)
	e.EncodeText(r.DnsName)
	return nil
}

func (r MultiHostName) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(2)
	e.EncodeUint(PoolRelayTypeMultiHostName)
	e.EncodeText(r.DnsName)
	return nil
}

func decodePort(d *decoder) (*uint32, error) {
	return decodeNullable(d, func(d *decoder) (uint32, error) {
		return d.decodeUint32("relay port")
	})
}

func decodeIp(d *decoder, typeName string, size int) (net.IP, error) {
	ip, err := decodeNullable(d, func(d *decoder) ([]byte, error) {
		start := d.Position()
		b, err := d.DecodeBytes()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", typeName, err)
		}
		if len(b) != size {
			return nil, InvalidLengthError{
				TypeName: typeName,
				Expected: size,
				Actual:   len(b),
				Offset:   start,
			}
		}
		return b, nil
	})
	if err != nil || ip == nil {
		return nil, err
	}
	return net.IP(*ip), nil
}

func decodePoolRelay(d *decoder) (PoolRelay, error) {
	const typeName = "relay"
	length, id, start, err := d.decodeVariantHeader(typeName)
	if err != nil {
		return nil, err
	}
	switch id {
	case PoolRelayTypeSingleHostAddress:
		if err := checkVariantLength(typeName, start, 4, length); err != nil {
			return nil, err
		}
		port, err := decodePort(d)
		if err != nil {
			return nil, err
		}
		ipv4, err := decodeIp(d, "relay ipv4", net.IPv4len)
		if err != nil {
			return nil, err
		}
		ipv6, err := decodeIp(d, "relay ipv6", net.IPv6len)
		if err != nil {
			return nil, err
		}
		return SingleHostAddr{Port: port, Ipv4: ipv4, Ipv6: ipv6}, nil
	case PoolRelayTypeSingleHostName:
		if err := checkVariantLength(typeName, start, 3, length); err != nil {
			return nil, err
		}
		port, err := decodePort(d)
		if err != nil {
			return nil, err
		}
		name, err := d.DecodeText()
		if err != nil {
			return nil, fmt.Errorf("decode relay dns name: %w", err)
		}
		return SingleHostName{Port: port, DnsName: name}, nil
	case PoolRelayTypeMultiHostName:
		if err := checkVariantLength(typeName, start, 2, length); err != nil {
			return nil, err
		}
		name, err := d.DecodeText()
		if err != nil {
			return nil, fmt.Errorf("decode relay dns name: %w", err)
		}
		return MultiHostName{DnsName: name}, nil
	default:
		return nil, UnknownVariantError{
			TypeName: typeName,
			Variant:  id,
			Offset:   start,
		}
	}
}
