package nakama

// RPC ids registered with the Nakama runtime.
const (
	RpcGameCreate   = "game_create"
	RpcGameBid      = "game_bid"
	RpcGamePartner  = "game_partner"
	RpcGameTurn     = "game_turn"
	RpcGameResume   = "game_resume"
	RpcGameGet      = "game_get"
	RpcChannelToken = "channel_token"
)

// Storage layout for persisted games. Records are system-owned so clients
// can read snapshots but never write them directly.
const (
	storageCollectionGames = "games"
	storagePermissionRead  = 2
	storagePermissionWrite = 0
)

// streamModeRoom is the custom stream mode carrying room channels. The
// channel name rides in the stream label.
const streamModeRoom uint8 = 10

// gRPC status codes used with runtime.NewError.
const (
	codeInvalidArgument    = 3
	codeNotFound           = 5
	codeFailedPrecondition = 9
	codeAborted            = 10
	codeInternal           = 13
)
