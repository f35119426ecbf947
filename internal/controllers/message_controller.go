package controllers

import (
	"net/http"
	"strings"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/auth"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/models"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/services"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/validation"
	"github.com/gin-gonic/gin"
)

const msgMessageSent = "Köszönjük, üzenetedet megkaptuk!"

// MessageController handles the contact form and the message list
type MessageController interface {
	ShowContact(c *gin.Context)
	Submit(c *gin.Context)
	List(c *gin.Context)
}

type messageController struct {
	messages services.MessageService
}

func NewMessageController(messages services.MessageService) MessageController {
	return &messageController{messages: messages}
}

func (mc *messageController) ShowContact(c *gin.Context) {
	render(c, http.StatusOK, "kapcsolat.html", gin.H{"Title": "Kapcsolat", "Form": validation.ContactForm{}})
}

func (mc *messageController) Submit(c *gin.Context) {
	var form validation.ContactForm
	_ = c.ShouldBind(&form)
	form.Normalize()

	if errs := validation.Check(&form); len(errs) > 0 {
		render(c, http.StatusBadRequest, "kapcsolat.html", gin.H{"Title": "Kapcsolat", "Form": form, "Errors": errs})
		return
	}

	message := &models.Message{
		Name:     form.Name,
		Email:    validation.OptionalString(form.Email),
		Phone:    validation.OptionalString(form.Phone),
		Body:     form.Body,
		SenderIP: validation.OptionalString(senderIP(c)),
	}
	if err := mc.messages.CreateMessage(message); err != nil {
		serverError(c, err)
		return
	}
	flash(c, auth.FlashSuccess, msgMessageSent)
	redirect(c, "/kapcsolat")
}

// List shows every message, newest first
func (mc *messageController) List(c *gin.Context) {
	messages, err := mc.messages.ListMessages()
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "uzenetek.html", gin.H{"Title": "Üzenetek", "Messages": messages})
}

// senderIP prefers the first X-Forwarded-For hop and falls back to the peer address
func senderIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	return c.RemoteIP()
}
