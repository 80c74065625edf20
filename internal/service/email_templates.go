package service

import "fmt"

func welcomeEmailTemplate(name, yearbookURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your spot in the yearbook is waiting. Add your major, a quote and your socials so the class can find you:
%s

Then leave a note on the wall and sign a few guestbooks.

See you at the reunion,
The %s Committee`, name, yearbookURL, appName)

	return subject, body
}

func reunionSubscribedTemplate(appURL, appName string) (string, string) {
	subject := fmt.Sprintf("You're on the %s reunion list", appName)
	body := fmt.Sprintf(`Thanks for signing up for reunion updates.

We'll write when dates, venues and photo drops are announced. Until then, the vault is open:
%s/vault

The %s Committee`, appURL, appName)

	return subject, body
}
