package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Префиксы номеров заявок.
const (
	RequestNumberPrefix = "REQ"
)

// GenerateRequestNumber возвращает номер вида REQ-YYYYMMDD-XXXXXXXXXXXX.
// Суффикс берётся из crypto/rand, а не из счётчика строк: счётчик под
// конкурентными созданиями выдаёт дубликаты. Уникальность дополнительно
// закреплена UNIQUE-ограничением на card_requests.request_number.
func GenerateRequestNumber(prefix string, now time.Time) string {
	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand на поддерживаемых платформах не возвращает ошибок;
		// наносекунды оставлены как аварийный источник.
		return fmt.Sprintf("%s-%s-%012X", prefix, now.Format("20060102"), now.UnixNano()&0xFFFFFFFFFFFF)
	}
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), strings.ToUpper(hex.EncodeToString(suffix)))
}

// GenerateCardNumber возвращает 16-значный номер карты.
func GenerateCardNumber() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%016d", time.Now().UnixNano()%1e16)
	}
	var b strings.Builder
	for _, x := range buf {
		fmt.Fprintf(&b, "%02d", int(x)%100)
	}
	return b.String()
}
