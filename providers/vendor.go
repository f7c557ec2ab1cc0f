package providers

import (
	"context"
	"encoding/json"

	"github.com/go-home-io/ttlock/device/enums"
)

// IVendorProvider defines vendor cloud API transport.
type IVendorProvider interface {
	Authenticate(ctx context.Context, credentials *VendorCredentials) (*TokenResponse, error)
	ExecuteAction(ctx context.Context, action enums.LockAction, lockID int64, token string) (*ActionResponse, error)
	QueryOpenState(ctx context.Context, lockID int64, token string) (*OpenStateResponse, error)
	GetLockDetail(ctx context.Context, lockID int64, token string) (*LockDetailResponse, error)
	ListLocks(ctx context.Context, token string, pageNo int, pageSize int) (*LockListResponse, error)
}

// VendorCredentials has account data used for obtaining access token.
type VendorCredentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// TokenResponse describes oauth2 token endpoint response.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	ErrCode      int    `json:"errcode"`
	ErrMsg       string `json:"errmsg"`
}

// ActionResponse describes lock/unlock endpoints response.
type ActionResponse struct {
	ErrCode     int    `json:"errcode"`
	ErrMsg      string `json:"errmsg"`
	Description string `json:"description"`
}

// OpenStateResponse describes queryOpenState endpoint response.
type OpenStateResponse struct {
	State   int    `json:"state"`
	ErrCode *int   `json:"errcode,omitempty"`
	ErrMsg  string `json:"errmsg,omitempty"`
}

// LockDetailResponse describes lock detail endpoint response.
type LockDetailResponse struct {
	LockID           int64       `json:"lockId"`
	LockName         string      `json:"lockName"`
	LockAlias        string      `json:"lockAlias"`
	LockMac          string      `json:"lockMac"`
	ElectricQuantity json.Number `json:"electricQuantity"`
	ErrCode          *int        `json:"errcode,omitempty"`
	ErrMsg           string      `json:"errmsg,omitempty"`
}

// LockListResponse describes paged lock list endpoint response.
type LockListResponse struct {
	List     []*LockListEntry `json:"list"`
	PageNo   int              `json:"pageNo"`
	PageSize int              `json:"pageSize"`
	Pages    int              `json:"pages"`
	Total    int              `json:"total"`
	ErrCode  *int             `json:"errcode,omitempty"`
	ErrMsg   string           `json:"errmsg,omitempty"`
}

// LockListEntry describes single lock in the account.
type LockListEntry struct {
	LockID           int64        `json:"lockId"`
	LockName         string       `json:"lockName"`
	LockAlias        string       `json:"lockAlias"`
	LockMac          string       `json:"lockMac"`
	ElectricQuantity json.Number  `json:"electricQuantity"`
	HasGateway       int          `json:"hasGateway"`
	LockVersion      *LockVersion `json:"lockVersion"`
}

// LockVersion describes lock hardware details.
type LockVersion struct {
	GroupID         json.Number `json:"groupId"`
	ProtocolType    json.Number `json:"protocolType"`
	ProtocolVersion json.Number `json:"protocolVersion"`
	OrgID           json.Number `json:"orgId"`
}
