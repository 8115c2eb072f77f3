package jwt

import "golang.org/x/crypto/bcrypt"

func NewAdmin(admin RegisterAdmin) (Admin, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), 10)
	if err != nil {
		return Admin{}, err
	}

	return Admin{
		Email:        admin.Email,
		PasswordHash: string(hashedPassword),
	}, nil
}

func ValidatePassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
