package service

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/parcelx-next/internal/constants"
)

const trackingIDCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateTrackingID 生成追踪编号（PX + 9 位大写字母数字）
func GenerateTrackingID() string {
	var b strings.Builder
	b.WriteString(constants.TrackingIDPrefix)
	charsetLen := big.NewInt(int64(len(trackingIDCharset)))
	for i := 0; i < constants.TrackingIDRandomLength; i++ {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			b.WriteByte('0')
			continue
		}
		b.WriteByte(trackingIDCharset[n.Int64()])
	}
	return b.String()
}
