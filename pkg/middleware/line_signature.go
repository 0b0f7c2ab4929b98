package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/gofiber/fiber/v2"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
)

// SignatureHeader carries the base64 HMAC-SHA256 of the request body.
const SignatureHeader = "X-Line-Signature"

// LineSignature rejects requests whose body was not signed with channelSecret.
// onReject, when non-nil, is called for every rejected request.
func LineSignature(channelSecret string, onReject func(c *fiber.Ctx)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		signature := c.Get(SignatureHeader)
		if signature == "" || !webhook.ValidateSignature(channelSecret, signature, c.Body()) {
			if onReject != nil {
				onReject(c)
			}
			return richerrors.Error{
				ExternalMsg: "Invalid signature",
				Code:        fiber.StatusUnauthorized,
			}
		}
		return c.Next()
	}
}

// SignBody returns the X-Line-Signature value LINE would send for body.
func SignBody(channelSecret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(channelSecret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
