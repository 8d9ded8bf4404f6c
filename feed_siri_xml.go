package main

import (
	"encoding/xml"
	"io"
	"strconv"

	"golang.org/x/net/html/charset"
)

// unknownRef marks identifier fields the feed omitted. Downstream code never
// treats it specially; it only keeps missing data visible on the display.
const unknownRef = "Unknown"

// parseSiriVM streams a SIRI VehicleMonitoring XML document and extracts one
// Bus per VehicleActivity. The walk is namespace tolerant (matches on
// Name.Local) and charset tolerant, since BODS responses occasionally
// declare non-UTF-8 encodings. A document with no activities yields an empty
// slice, not an error.
func parseSiriVM(r io.Reader) ([]Bus, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var (
		inSiri, inSD, inVMD, inVA, inMVJ, inVL bool

		cur            Bus
		curLat, curLon string
		buses          []Bus
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "Siri":
				inSiri = true
			case "ServiceDelivery":
				if inSiri {
					inSD = true
				}
			case "VehicleMonitoringDelivery":
				if inSD {
					inVMD = true
				}
			case "VehicleActivity":
				if inVMD {
					inVA = true
					cur = Bus{}
					curLat, curLon = "", ""
				}
			case "RecordedAtTime":
				if inVA && !inMVJ {
					cur.RecordedAt = textOf(dec, &se)
				}
			case "MonitoredVehicleJourney":
				if inVA {
					inMVJ = true
				}
			case "VehicleLocation":
				if inMVJ {
					inVL = true
				}
			case "LineRef":
				if inMVJ {
					cur.LineRef = textOf(dec, &se)
				}
			case "OperatorRef":
				if inMVJ {
					cur.OperatorRef = textOf(dec, &se)
				}
			case "OriginRef":
				if inMVJ {
					cur.OriginRef = textOf(dec, &se)
				}
			case "DestinationRef":
				if inMVJ {
					cur.DestinationRef = textOf(dec, &se)
				}
			case "VehicleRef":
				if inMVJ {
					cur.VehicleRef = textOf(dec, &se)
				}
			case "OriginName":
				if inMVJ {
					cur.OriginName = textOf(dec, &se)
				}
			case "DestinationName":
				if inMVJ {
					cur.DestinationName = textOf(dec, &se)
				}
			case "Latitude":
				if inVL {
					curLat = textOf(dec, &se)
				}
			case "Longitude":
				if inVL {
					curLon = textOf(dec, &se)
				}
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "VehicleLocation":
				inVL = false
			case "MonitoredVehicleJourney":
				inMVJ = false
			case "VehicleActivity":
				if inVA {
					inVA = false
					if lat, lon, ok := parseLatLon(curLat, curLon); ok {
						cur.Location = &Location{Latitude: lat, Longitude: lon}
					}
					buses = append(buses, withRefDefaults(cur))
				}
			case "VehicleMonitoringDelivery":
				inVMD = false
			case "ServiceDelivery":
				inSD = false
			case "Siri":
				inSiri = false
			}
		}
	}
	return buses, nil
}

func textOf(dec *xml.Decoder, se *xml.StartElement) string {
	var v string
	if err := dec.DecodeElement(&v, se); err != nil {
		return ""
	}
	return v
}

func withRefDefaults(b Bus) Bus {
	if b.LineRef == "" {
		b.LineRef = unknownRef
	}
	if b.OperatorRef == "" {
		b.OperatorRef = unknownRef
	}
	if b.OriginRef == "" {
		b.OriginRef = unknownRef
	}
	if b.DestinationRef == "" {
		b.DestinationRef = unknownRef
	}
	if b.VehicleRef == "" {
		b.VehicleRef = unknownRef
	}
	return b
}

func parseLatLon(lat, lon string) (float64, float64, bool) {
	lf, err1 := strconv.ParseFloat(lat, 64)
	if err1 != nil {
		return 0, 0, false
	}
	lo, err2 := strconv.ParseFloat(lon, 64)
	if err2 != nil {
		return 0, 0, false
	}
	return lf, lo, true
}
