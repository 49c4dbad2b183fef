package db

import (
	"log"
	"sync"

	"github.com/dgraph-io/ristretto"
)

// Storing cache keys in concurrent data structures so all cached offer
// lookups (one key per merchant) can be cleared when a refresh replaces them.
var (
	Cache          *ristretto.Cache
	OfferCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
)

const cardsCacheKey = "cards:all"

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

// Wallet (cards) cache functions

func GetCardsCache() (interface{}, bool) {
	if Cache == nil {
		return nil, false
	}
	return Cache.Get(cardsCacheKey)
}

func SetCardsCache(value interface{}) {
	if Cache == nil {
		return
	}
	Cache.Set(cardsCacheKey, value, 1)
}

func ClearCardsCache() {
	if Cache == nil {
		return
	}
	Cache.Del(cardsCacheKey)
}

// Offer cache functions

func GetOfferCache(cacheKey string) (interface{}, bool) {
	if Cache == nil {
		return nil, false
	}
	return Cache.Get(cacheKey)
}

func SetOfferCache(cacheKey string, value interface{}) {
	if Cache == nil {
		return
	}
	OfferCacheKeys.Lock()
	OfferCacheKeys.m[cacheKey] = struct{}{}
	OfferCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

func ClearAllOfferCaches() {
	if Cache == nil {
		return
	}
	OfferCacheKeys.Lock()
	for key := range OfferCacheKeys.m {
		Cache.Del(key)
	}
	OfferCacheKeys.m = make(map[string]struct{})
	OfferCacheKeys.Unlock()
}
