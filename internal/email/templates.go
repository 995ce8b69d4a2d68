package email

import "fmt"

const (
	SubjectVerifyAccount   = "Account Verification Token"
	SubjectResetPassword   = "Password Reset Request"
	SubjectPasswordChanged = "Your password has been changed"
)

func VerifyAccountBody(url string) string {
	return fmt.Sprintf(
		`Please click the following link: <a href='%s' target="_blank"> %s </a> to verify your account.`,
		url, url,
	)
}

func ResetPasswordBody(url string) string {
	return fmt.Sprintf(
		`Please click the following link: <a href='%s' target="_blank"> %s </a> to reset your password. `+
			`If you did not request this, please ignore this email and your password will remain unchanged.`,
		url, url,
	)
}

func PasswordChangedBody(emailAddr string) string {
	return fmt.Sprintf(
		`Hi, this is a confirmation that the password for your account %s has just been changed.`,
		emailAddr,
	)
}
