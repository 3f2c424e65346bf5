package consts

const (
	TokenRevokedKey = "auth:token:revoked:"
)

const (
	RefreshLock = "analytics:refresh:lock:"
)
