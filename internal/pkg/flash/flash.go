package flash

import (
	"net/url"

	"github.com/gin-gonic/gin"
)

const (
	cookieName = "notice_flash"
	// A flash only needs to survive the redirect that set it.
	cookieMaxAge = 60
)

// Message is redirect-scoped state: it is written on the response that
// issues the redirect and visible exactly once on the following request.
type Message struct {
	Completed  string
	ResultType string
}

// Set attaches the message to the response as a short-lived cookie.
func Set(c *gin.Context, m Message) {
	v := url.Values{}
	v.Set("msg", m.Completed)
	v.Set("type", m.ResultType)
	c.SetCookie(cookieName, v.Encode(), cookieMaxAge, "/", "", false, true)
}

// Take reads and clears the pending message, if any.
func Take(c *gin.Context) (Message, bool) {
	raw, err := c.Cookie(cookieName)
	if err != nil {
		return Message{}, false
	}
	c.SetCookie(cookieName, "", -1, "/", "", false, true)

	v, err := url.ParseQuery(raw)
	if err != nil {
		return Message{}, false
	}
	return Message{Completed: v.Get("msg"), ResultType: v.Get("type")}, true
}
