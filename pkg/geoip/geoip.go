package geoip

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

type GeoIP interface {
	Close() (err error)
	Lookup(ip net.IP) GeoInfo
}

// GeoInfo - то, чем обогащается событие посещения: страна и автономная
// система источника. База ASN опциональна.
type GeoInfo struct {
	CC  string // ISO-2 код страны
	ASN int
}

type Geo struct {
	countryDB *geoip2.Reader // GeoLite2-Country.mmdb
	asnDB     *geoip2.Reader // GeoLite2-ASN.mmdb
}

func NewGeo(countryPath, asnPath string) (g *Geo, err error) {
	cdb, err := geoip2.Open(countryPath)
	if err != nil {
		return nil, err
	}

	var adb *geoip2.Reader
	if asnPath != "" {
		if adb, err = geoip2.Open(asnPath); err != nil {
			if cErr := cdb.Close(); cErr != nil {
				err = fmt.Errorf("%w, failed to close geoip db: %v", err, cErr)
			}

			return nil, err
		}
	}

	return &Geo{
		countryDB: cdb,
		asnDB:     adb,
	}, nil
}

func (g *Geo) Close() (err error) {
	if g.asnDB != nil {
		if cErr := g.asnDB.Close(); cErr != nil {
			err = fmt.Errorf("%w, failed to close geoip db: %v", err, cErr)
		}
	}

	if g.countryDB != nil {
		if cErr := g.countryDB.Close(); cErr != nil {
			err = fmt.Errorf("%w, failed to close geoip db: %v", err, cErr)
		}
	}

	return nil
}

// Lookup никогда не возвращает ошибку: посещение без геоданных всё равно
// попадает в статистику.
func (g *Geo) Lookup(ip net.IP) GeoInfo {
	var out GeoInfo
	if ip == nil {
		return out
	}

	if g.asnDB != nil {
		if rec, err := g.asnDB.ASN(ip); err == nil && rec != nil {
			out.ASN = int(rec.AutonomousSystemNumber)
		}
	}

	if g.countryDB != nil {
		if rec, err := g.countryDB.Country(ip); err == nil && rec != nil {
			out.CC = rec.Country.IsoCode
		}
	}

	return out
}
