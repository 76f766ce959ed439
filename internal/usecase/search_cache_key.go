package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

type offerSearchCacheKeyInput struct {
	Title    string `json:"title"`
	Location string `json:"location"`
	Salary   string `json:"salary"`
	Company  string `json:"company"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

func OffersSearchCacheKey(params OfferListParams) string {
	in := offerSearchCacheKeyInput{
		Title:    normalizeSearchValue(params.Title),
		Location: normalizeSearchValue(params.Location),
		Salary:   normalizeSearchValue(params.Salary),
		Company:  normalizeSearchValue(params.Company),
		Page:     params.Page,
		PageSize: params.PageSize,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	h := hex.EncodeToString(sum[:])
	return "offers:search:" + h
}

func OffersSearchLockKey(searchKey string) string {
	searchKey = strings.TrimSpace(searchKey)
	if strings.HasPrefix(searchKey, "offers:search:") {
		return "offers:lock:" + strings.TrimPrefix(searchKey, "offers:search:")
	}
	return "offers:lock:" + searchKey
}
