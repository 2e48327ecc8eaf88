package store

import (
	"github.com/framp/framp-backend/internal/store/offramprequest"
	"github.com/framp/framp-backend/internal/store/user"
	"github.com/framp/framp-backend/internal/store/waitlist"
)

type Store struct {
	OffRampRequest offramprequest.IStore
	User           user.IStore
	Waitlist       waitlist.IStore
}

func New() *Store {
	return &Store{
		OffRampRequest: offramprequest.New(),
		User:           user.New(),
		Waitlist:       waitlist.New(),
	}
}
