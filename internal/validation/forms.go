package validation

import "strings"

// RegistrationForm is the sign-up form; failures are reported all at once
type RegistrationForm struct {
	Name     string `form:"nev" validate:"min=2,max=100" msg:"A név minimum 2 karakter."`
	Email    string `form:"email" validate:"required,simplemail,max=255" msg:"Érvényes e-mail cím szükséges."`
	Password string `form:"jelszo" validate:"min=6,bcryptlen" msg:"A jelszó minimum 6 karakter, legfeljebb 72 bájt."`
	Confirm  string `form:"jelszo2" validate:"eqfield=Password" msg:"A jelszavak nem egyeznek."`
}

func (f *RegistrationForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
}

// LoginForm needs both fields; either missing gives one message
type LoginForm struct {
	Email    string `form:"email" validate:"required" msg:"Kérlek add meg az e-mail címet és a jelszót."`
	Password string `form:"jelszo" validate:"required" msg:"Kérlek add meg az e-mail címet és a jelszót."`
}

func (f *LoginForm) Normalize() {
	f.Email = strings.TrimSpace(f.Email)
}

// ContactForm is a visitor's message; email is checked only when given
type ContactForm struct {
	Name  string `form:"nev" validate:"min=2,max=100" msg:"A név minimum 2 karakter."`
	Email string `form:"email" validate:"omitempty,simplemail,max=255" msg:"Érvénytelen e-mail cím."`
	Phone string `form:"telefon" validate:"max=50" msg:"A telefonszám túl hosszú."`
	Body  string `form:"uzenet" validate:"min=5" msg:"Az üzenet minimum 5 karakter."`
}

func (f *ContactForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Body = strings.TrimSpace(f.Body)
}

// DishForm creates or edits a dish
type DishForm struct {
	Name       string `form:"nev" validate:"required,max=200" msg:"Az étel neve kötelező (legfeljebb 200 karakter)."`
	CategoryID string `form:"kategoriaid"`
}

func (f *DishForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
}

// DishIngredientForm adds or updates one ingredient of a dish
type DishIngredientForm struct {
	IngredientID string `form:"hozzavaloid"`
	Quantity     string `form:"mennyiseg"`
	Unit         string `form:"egyseg" validate:"max=50" msg:"A mértékegység legfeljebb 50 karakter."`
}
