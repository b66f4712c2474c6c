package testutil

import (
	tele "gopkg.in/telebot.v3"
)

// FakeContext is a minimal tele.Context recording what handlers send.
// Methods it does not override panic when called.
type FakeContext struct {
	tele.Context

	User          *tele.User
	ChatValue     *tele.Chat
	TextValue     string
	CallbackValue *tele.Callback

	Sent      []interface{}
	SentOpts  [][]interface{}
	Edited    []interface{}
	Responses []*tele.CallbackResponse

	// EditErr is returned by Edit when set
	EditErr error
}

// NewFakeMessage creates a context for a text message from userID
func NewFakeMessage(userID int64, text string) *FakeContext {
	return &FakeContext{
		User:      &tele.User{ID: userID},
		ChatValue: &tele.Chat{ID: userID},
		TextValue: text,
	}
}

// NewFakeCallback creates a context for an inline button press from userID
func NewFakeCallback(userID int64, data string) *FakeContext {
	return &FakeContext{
		User:          &tele.User{ID: userID},
		ChatValue:     &tele.Chat{ID: userID},
		CallbackValue: &tele.Callback{ID: "cb", Data: "\f" + data},
	}
}

func (c *FakeContext) Sender() *tele.User       { return c.User }
func (c *FakeContext) Chat() *tele.Chat         { return c.ChatValue }
func (c *FakeContext) Text() string             { return c.TextValue }
func (c *FakeContext) Callback() *tele.Callback { return c.CallbackValue }

func (c *FakeContext) Send(what interface{}, opts ...interface{}) error {
	c.Sent = append(c.Sent, what)
	c.SentOpts = append(c.SentOpts, opts)
	return nil
}

func (c *FakeContext) Edit(what interface{}, opts ...interface{}) error {
	if c.EditErr != nil {
		return c.EditErr
	}
	c.Edited = append(c.Edited, what)
	return nil
}

func (c *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		c.Responses = append(c.Responses, nil)
		return nil
	}
	c.Responses = append(c.Responses, resp...)
	return nil
}

// LastText returns the last edited string, or the last sent one when nothing was edited
func (c *FakeContext) LastText() string {
	for _, list := range [][]interface{}{c.Edited, c.Sent} {
		for i := len(list) - 1; i >= 0; i-- {
			if s, ok := list[i].(string); ok {
				return s
			}
		}
	}
	return ""
}
