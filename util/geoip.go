package util

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oschwald/geoip2-golang"
	cache "github.com/patrickmn/go-cache"
)

var (
	geoipMu        sync.RWMutex
	geoipDB        *geoip2.Reader
	geoipCache     = cache.New(24*time.Hour, time.Hour)
	geoipCacheHits int64
	geoipCacheMiss int64
)

// InitGeoIP opens a GeoIP2/GeoLite2 .mmdb file. An empty path disables
// lookups.
func InitGeoIP(dbPath string) error {
	if dbPath == "" {
		return nil
	}
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoipMu.Lock()
	defer geoipMu.Unlock()
	if geoipDB != nil {
		_ = geoipDB.Close()
	}
	geoipDB = r
	return nil
}

// CloseGeoIP closes the GeoIP DB if opened.
func CloseGeoIP() {
	geoipMu.Lock()
	defer geoipMu.Unlock()
	if geoipDB != nil {
		_ = geoipDB.Close()
		geoipDB = nil
	}
}

// GetIPLocation returns city and country name for ip. Private, loopback and
// unparseable addresses, or a missing database, yield empty strings.
func GetIPLocation(ip string) (string, string) {
	addr := net.ParseIP(ip)
	if addr == nil || addr.IsLoopback() || addr.IsPrivate() || addr.IsUnspecified() || addr.IsLinkLocalUnicast() {
		return "", ""
	}

	if v, ok := geoipCache.Get(ip); ok {
		atomic.AddInt64(&geoipCacheHits, 1)
		if arr, ok := v.([2]string); ok {
			return arr[0], arr[1]
		}
	}
	atomic.AddInt64(&geoipCacheMiss, 1)

	geoipMu.RLock()
	db := geoipDB
	geoipMu.RUnlock()
	if db == nil {
		return "", ""
	}

	rec, err := db.City(addr)
	if err != nil {
		return "", ""
	}
	city := rec.City.Names["en"]
	country := rec.Country.Names["en"]
	if country == "" {
		country = rec.Country.IsoCode
	}
	geoipCache.Set(ip, [2]string{city, country}, cache.DefaultExpiration)
	return city, country
}

// FormatLocation joins city and country as "City/Country", dropping empty parts.
func FormatLocation(city, country string) string {
	switch {
	case city != "" && country != "":
		return city + "/" + country
	case country != "":
		return country
	default:
		return city
	}
}

// GetGeoIPCacheMetrics returns the cache hits and misses and current cache size.
func GetGeoIPCacheMetrics() (hits int64, misses int64, size int) {
	return atomic.LoadInt64(&geoipCacheHits), atomic.LoadInt64(&geoipCacheMiss), geoipCache.ItemCount()
}
