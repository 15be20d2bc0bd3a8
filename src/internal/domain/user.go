package domain

// User is a directory entry. Credentials are stored as bcrypt hashes.
type User struct {
	ID           string
	Name         string
	PasswordHash string
	PinHash      string
	Accounts     []Account
}

// Clone returns a copy that shares no account slice with u.
func (u User) Clone() User {
	out := u
	out.Accounts = make([]Account, len(u.Accounts))
	copy(out.Accounts, u.Accounts)
	return out
}

// AccountIndex returns the position of the account with the given number, or -1.
func (u User) AccountIndex(number string) int {
	for i, account := range u.Accounts {
		if account.Number == number {
			return i
		}
	}
	return -1
}

func (u User) HasAccount(index int) bool {
	return index >= 0 && index < len(u.Accounts)
}
