package controllers

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/auth"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/middleware"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/models"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/services"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/validation"
	"github.com/gin-gonic/gin"
)

const (
	msgEmailTaken  = "Ez az e-mail cím már foglalt!"
	msgRegistered  = "Sikeres regisztráció, most már bejelentkezhetsz."
	msgLoginFailed = "Hibás e-mail cím vagy jelszó!"
	msgLoggedIn    = "Sikeres bejelentkezés!"
)

// AuthController handles registration, login and logout
type AuthController interface {
	ShowRegister(c *gin.Context)
	Register(c *gin.Context)
	ShowLogin(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
}

type authController struct {
	userService services.UserService
}

func NewAuthController(userService services.UserService) AuthController {
	return &authController{userService: userService}
}

func (ac *authController) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "regisztracio.html", gin.H{"Title": "Regisztráció", "Form": validation.RegistrationForm{}})
}

func (ac *authController) Register(c *gin.Context) {
	var form validation.RegistrationForm
	_ = c.ShouldBind(&form)
	form.Normalize()

	reply := func(status int, errs []string) {
		form.Password, form.Confirm = "", ""
		render(c, status, "regisztracio.html", gin.H{"Title": "Regisztráció", "Form": form, "Errors": errs})
	}

	if errs := validation.Check(&form); len(errs) > 0 {
		reply(http.StatusBadRequest, errs)
		return
	}

	_, err := ac.userService.Register(services.RegistrationInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
	})
	if errors.Is(err, models.ErrUserExists) {
		reply(http.StatusConflict, []string{msgEmailTaken})
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	flash(c, auth.FlashSuccess, msgRegistered)
	redirect(c, "/login")
}

func (ac *authController) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"Title": "Bejelentkezés", "Form": validation.LoginForm{}})
}

func (ac *authController) Login(c *gin.Context) {
	var form validation.LoginForm
	_ = c.ShouldBind(&form)
	form.Normalize()

	reply := func(status int, errs []string) {
		form.Password = ""
		render(c, status, "login.html", gin.H{"Title": "Bejelentkezés", "Form": form, "Errors": errs})
	}

	if errs := validation.Check(&form); len(errs) > 0 {
		reply(http.StatusBadRequest, errs)
		return
	}

	user, err := ac.userService.Authenticate(form.Email, form.Password)
	if errors.Is(err, models.ErrUserNotFound) || errors.Is(err, models.ErrWrongPassword) {
		middleware.Logger(c).WithField("reason", err.Error()).Info("Login rejected")
		reply(http.StatusUnauthorized, []string{msgLoginFailed})
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	identity := auth.Identity{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
	if err := auth.SignIn(c, identity); err != nil {
		serverError(c, err)
		return
	}
	flash(c, auth.FlashSuccess, msgLoggedIn)
	if identity.IsAdmin() {
		redirect(c, "/admin")
		return
	}
	redirect(c, "/")
}

// Logout is idempotent; an anonymous visitor is simply sent home
func (ac *authController) Logout(c *gin.Context) {
	if err := auth.SignOut(c, cookiePath(c)); err != nil {
		middleware.Logger(c).WithError(err).Warn("Could not destroy session")
	}
	redirect(c, "/")
}

func cookiePath(c *gin.Context) string {
	if p := basePath(c); p != "" {
		return p
	}
	return "/"
}
