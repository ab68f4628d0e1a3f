package domain

import (
	"strings"
	"time"
)

const (
	LoginFail    int8 = 0
	LoginSuccess int8 = 1
)

// DiscordUser is the identity Discord returns for the identify scope.
type DiscordUser struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	GlobalName    string `json:"global_name,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
}

// Tag renders the user the way Discord shows it; new-style names have no
// discriminator.
func (u DiscordUser) Tag() string {
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}

// Validate rejects identities the login cannot key on.
func (u DiscordUser) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return NewError(CodeInvalidIdentity, map[string]any{"username": u.Username}, nil)
	}
	return nil
}

type LoginHistory struct {
	Id        int       `gorm:"column:id;primaryKey;autoIncrement;comment:row id" json:"id"`
	DiscordID string    `gorm:"column:discord_id;type:varchar(32);index:idx_discord_time;not null;comment:discord user id" json:"discord_id"`
	Username  string    `gorm:"column:username;type:varchar(64);comment:discord tag at login" json:"username"`
	CTime     time.Time `gorm:"column:ctime;autoCreateTime;index:idx_discord_time;comment:login time" json:"ctime"`
	Ip        string    `gorm:"column:ip;type:varchar(50);comment:client ip" json:"ip"`
	State     int8      `gorm:"column:state;not null;comment:1 success 0 failure" json:"state"`
}

func (LoginHistory) TableName() string {
	return "login_history"
}
