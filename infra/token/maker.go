package token

import (
	"time"
)

type Maker interface {
	CreateTokenUser(id int64, name, email string, profileID int64, document string, expireAt time.Time) (string, error)
	VerifyTokenUser(token string) (*PayloadUser, error)
}
