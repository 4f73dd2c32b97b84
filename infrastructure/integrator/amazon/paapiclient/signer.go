package paapiclient

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	signingAlgorithm = "AWS4-HMAC-SHA256"
	signingService   = "ProductAdvertisingAPI"

	amzDateFormat   = "20060102T150405Z"
	dateStampFormat = "20060102"
)

// Signer implementa a assinatura AWS Signature V4 exigida pela PA-API:
// hash da requisição canônica, chave derivada por cadeia de HMACs e
// assinatura HMAC-SHA256 do string-to-sign
type Signer struct {
	accessKey string
	secretKey string
	region    string
}

func NewSigner(accessKey, secretKey, region string) *Signer {
	return &Signer{
		accessKey: accessKey,
		secretKey: secretKey,
		region:    region,
	}
}

// Sign assina a requisição in place. O payload precisa ser exatamente o corpo
// que será enviado: a assinatura cobre os bytes serializados.
func (s *Signer) Sign(req *http.Request, payload []byte, now time.Time) {
	amzDate := now.UTC().Format(amzDateFormat)
	dateStamp := now.UTC().Format(dateStampFormat)

	req.Header.Set("X-Amz-Date", amzDate)

	// Cabeçalhos assinados, em ordem alfabética
	signedHeaderNames := []string{"content-encoding", "content-type", "host", "x-amz-date", "x-amz-target"}
	signedHeaders := strings.Join(signedHeaderNames, ";")

	var canonicalHeaders strings.Builder
	for _, name := range signedHeaderNames {
		value := req.Header.Get(name)
		if name == "host" {
			value = req.Host
			if value == "" {
				value = req.URL.Host
			}
		}
		canonicalHeaders.WriteString(name)
		canonicalHeaders.WriteString(":")
		canonicalHeaders.WriteString(strings.TrimSpace(value))
		canonicalHeaders.WriteString("\n")
	}

	canonicalRequest := strings.Join([]string{
		req.Method,
		req.URL.Path,
		req.URL.RawQuery,
		canonicalHeaders.String(),
		signedHeaders,
		hashSHA256(payload),
	}, "\n")

	credentialScope := fmt.Sprintf("%s/%s/%s/aws4_request", dateStamp, s.region, signingService)

	stringToSign := strings.Join([]string{
		signingAlgorithm,
		amzDate,
		credentialScope,
		hashSHA256([]byte(canonicalRequest)),
	}, "\n")

	signingKey := s.deriveSigningKey(dateStamp)
	signature := hex.EncodeToString(hmacSHA256(signingKey, stringToSign))

	authorization := fmt.Sprintf(
		"%s Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		signingAlgorithm,
		s.accessKey,
		credentialScope,
		signedHeaders,
		signature,
	)

	req.Header.Set("Authorization", authorization)
}

// deriveSigningKey deriva a chave de assinatura do dia via cadeia de HMACs
func (s *Signer) deriveSigningKey(dateStamp string) []byte {
	kDate := hmacSHA256([]byte("AWS4"+s.secretKey), dateStamp)
	kRegion := hmacSHA256(kDate, s.region)
	kService := hmacSHA256(kRegion, signingService)
	return hmacSHA256(kService, "aws4_request")
}

func hmacSHA256(key []byte, data string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(data))
	return mac.Sum(nil)
}

func hashSHA256(data []byte) string {
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}
