package mpegts

import "fmt"

const (
	packetSize = 188
	syncByte   = 0x47
)

// parsePacket splits one 188-byte transport packet into header bits and
// payload. Only the fields the section accumulator consumes are decoded;
// PCR and the remainder of the adaptation field are skipped over.
func parsePacket(buf []byte) (*Packet, error) {
	if len(buf) != packetSize {
		return nil, fmt.Errorf("mpegts: %d bytes is not a transport packet", len(buf))
	}
	if buf[0] != syncByte {
		return nil, fmt.Errorf("mpegts: lost sync, leading byte 0x%02X", buf[0])
	}

	p := &Packet{
		Header: PacketHeader{
			TransportErrorIndicator:   buf[1]&0x80 != 0,
			PayloadUnitStartIndicator: buf[1]&0x40 != 0,
			PID:                       uint16(buf[1]&0x1F)<<8 | uint16(buf[2]),
			HasAdaptationField:        buf[3]&0x20 != 0,
			HasPayload:                buf[3]&0x10 != 0,
			ContinuityCounter:         buf[3] & 0x0F,
		},
	}

	payloadStart := 4
	if p.Header.HasAdaptationField {
		afLen := int(buf[4])
		if afLen > 0 {
			p.Header.DiscontinuityIndicator = buf[5]&0x80 != 0
		}
		payloadStart += 1 + afLen
		if payloadStart > packetSize {
			// Adaptation length overruns the packet; nothing left to carry.
			payloadStart = packetSize
		}
	}

	if p.Header.HasPayload && payloadStart < packetSize {
		p.Payload = append([]byte(nil), buf[payloadStart:]...)
	}
	return p, nil
}
