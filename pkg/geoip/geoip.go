// Package geoip wraps the MaxMind City and ASN databases behind a small,
// optional lookup service. The engine is the only caller; heuristics never
// touch GeoIP directly and raw IPs are never retained.
package geoip

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// GeoData holds the location attributes found for an IP address.
type GeoData struct {
	CountryCode string
	CityName    string
	Timezone    string
	Latitude    float64
	Longitude   float64
}

// Service manages the GeoIP and ASN database readers. A nil *Service is
// valid and makes every lookup return an error, which callers treat as
// "no geographic context available".
type Service struct {
	cityReader *geoip2.Reader
	asnReader  *geoip2.Reader
}

// NewService opens the given .mmdb files. Either path may be empty, in
// which case the corresponding lookups are unavailable.
func NewService(cityDBPath, asnDBPath string) (*Service, error) {
	s := &Service{}

	if cityDBPath != "" {
		reader, err := geoip2.Open(cityDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open city database: %w", err)
		}
		s.cityReader = reader
	}
	if asnDBPath != "" {
		reader, err := geoip2.Open(asnDBPath)
		if err != nil {
			if s.cityReader != nil {
				s.cityReader.Close()
			}
			return nil, fmt.Errorf("failed to open asn database: %w", err)
		}
		s.asnReader = reader
	}
	return s, nil
}

// Close closes any open database readers.
func (s *Service) Close() {
	if s == nil {
		return
	}
	if s.cityReader != nil {
		s.cityReader.Close()
	}
	if s.asnReader != nil {
		s.asnReader.Close()
	}
}

// GetLocation returns country, city, timezone and coordinates for an IP.
func (s *Service) GetLocation(ipAddress string) (*GeoData, error) {
	if s == nil || s.cityReader == nil {
		return nil, fmt.Errorf("city database not available")
	}
	ip := net.ParseIP(ipAddress)
	if ip == nil {
		return nil, fmt.Errorf("invalid ip address: %s", ipAddress)
	}

	record, err := s.cityReader.City(ip)
	if err != nil {
		return nil, err
	}

	return &GeoData{
		CountryCode: record.Country.IsoCode,
		CityName:    record.City.Names["en"],
		Timezone:    record.Location.TimeZone,
		Latitude:    record.Location.Latitude,
		Longitude:   record.Location.Longitude,
	}, nil
}

// GetASN returns the autonomous system number and organization for an IP.
func (s *Service) GetASN(ipAddress string) (uint, string, error) {
	if s == nil || s.asnReader == nil {
		return 0, "", fmt.Errorf("asn database not available")
	}
	ip := net.ParseIP(ipAddress)
	if ip == nil {
		return 0, "", fmt.Errorf("invalid ip address: %s", ipAddress)
	}

	record, err := s.asnReader.ASN(ip)
	if err != nil {
		return 0, "", err
	}

	return uint(record.AutonomousSystemNumber), record.AutonomousSystemOrganization, nil
}
