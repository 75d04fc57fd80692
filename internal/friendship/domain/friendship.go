package domain

import "time"

// Status friendship status
type Status string

const (
	// StatusPending 等待對方回覆
	StatusPending Status = "pending"
	// StatusAccepted 已成為好友
	StatusAccepted Status = "accepted"
	// StatusRejected 被拒絕, 紀錄保留
	StatusRejected Status = "rejected"
)

// Friendship 一筆 requester -> recipient 的關係, 也是好友關係唯一的來源
type Friendship struct {
	ID          string    `bson:"_id" json:"id"`
	RequesterID string    `bson:"requester" json:"requester"`
	RecipientID string    `bson:"recipient" json:"recipient"`
	Status      Status    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

// Other 取得另一方
func (f *Friendship) Other(userID string) string {
	if f.RequesterID == userID {
		return f.RecipientID
	}
	return f.RequesterID
}

// UserProfile user service 回傳的公開資料
type UserProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// GetID 讓 Ref 解析時取得 id
func (p UserProfile) GetID() string { return p.ID }

// PendingRequest GET /friendships/pending 的一筆
type PendingRequest struct {
	ID        string           `json:"id"`
	Requester Ref[UserProfile] `json:"requester"`
	Recipient string           `json:"recipient"`
	Status    Status           `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NewPendingRequest 尚未解析 requester
func NewPendingRequest(f Friendship) PendingRequest {
	return PendingRequest{
		ID:        f.ID,
		Requester: RefID[UserProfile](f.RequesterID),
		Recipient: f.RecipientID,
		Status:    f.Status,
		CreatedAt: f.CreatedAt,
	}
}

// PostEvent kafka post_events 的內容, post 審核通過時產生
type PostEvent struct {
	PostID     string    `json:"postId"`
	AuthorID   string    `json:"authorId"`
	Content    string    `json:"content"`
	ApprovedAt time.Time `json:"approvedAt"`
}

// RequestBody POST /friendships/request
type RequestBody struct {
	RecipientID string `json:"recipientId"`
}

// RespondBody POST /friendships/accept|reject
type RespondBody struct {
	RequesterID string `json:"requesterId"`
}

// RemoveBody DELETE /friendships/remove
type RemoveBody struct {
	FriendID string `json:"friendId"`
}
