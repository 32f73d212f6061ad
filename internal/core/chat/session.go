package chat

import (
	"encoding/json"
	"time"

	"cookmate/internal/pkg/common"
)

// Sender 訊息發送者
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message 單則聊天訊息，建立後不再修改
type Message struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Session 單一使用者的對話紀錄，只能附加
type Session struct {
	id        string
	version   int64
	createdAt time.Time
	updatedAt time.Time
	messages  []Message
}

// NewSession 建立空的會話
func NewSession() *Session {
	now := time.Now().UTC()
	return &Session{
		id:        common.GenerateUUID(),
		createdAt: now,
		updatedAt: now,
		messages:  make([]Message, 0, 16),
	}
}

// ID 會話編號
func (s *Session) ID() string { return s.id }

// Version 儲存版本，每次成功 Save 後加一
func (s *Session) Version() int64 { return s.version }

// CreatedAt 建立時間
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt 最後一次附加訊息的時間
func (s *Session) UpdatedAt() time.Time { return s.updatedAt }

// Len 訊息數量
func (s *Session) Len() int { return len(s.messages) }

// Empty 是否尚無訊息
func (s *Session) Empty() bool { return len(s.messages) == 0 }

// Messages 依序回傳訊息副本
func (s *Session) Messages() []Message {
	copied := make([]Message, len(s.messages))
	copy(copied, s.messages)
	return copied
}

// AppendUser 附加使用者訊息
func (s *Session) AppendUser(text string) Message {
	return s.append(Message{Sender: SenderUser, Text: text})
}

// AppendBot 附加機器人回覆，imageURL 可為空
func (s *Session) AppendBot(text, imageURL string) Message {
	return s.append(Message{Sender: SenderBot, Text: text, ImageURL: imageURL})
}

func (s *Session) append(msg Message) Message {
	msg.ID = common.GenerateUUID()
	msg.CreatedAt = time.Now().UTC()
	s.messages = append(s.messages, msg)
	s.updatedAt = msg.CreatedAt
	return msg
}

// Clone 深拷貝會話
func (s *Session) Clone() *Session {
	c := *s
	c.messages = s.Messages()
	return &c
}

type sessionJSON struct {
	ID        string    `json:"id"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Messages  []Message `json:"messages"`
}

// MarshalJSON 輸出會話與完整對話紀錄
func (s *Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionJSON{
		ID:        s.id,
		Version:   s.version,
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
		Messages:  s.Messages(),
	})
}

// UnmarshalJSON 還原會話
func (s *Session) UnmarshalJSON(data []byte) error {
	var raw sessionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.id = raw.ID
	s.version = raw.Version
	s.createdAt = raw.CreatedAt
	s.updatedAt = raw.UpdatedAt
	s.messages = raw.Messages
	if s.messages == nil {
		s.messages = make([]Message, 0, 16)
	}
	return nil
}
