package utils

import "fmt"

const (
	_ = iota
	INVALID_REQUEST_DATA
	INVALID_ID_FORMAT
	CANNOT_CONNECT_TO_MONGODB
	CANNOT_FIND_IN_MONGODB
	CANNOT_INSERT_IN_MONGODB
	CANNOT_UPDATE_IN_MONGODB
	CANNOT_DELETE_FROM_MONGODB
	CANNOT_QUERY_LEGACY_MYSQL
	CANNOT_RECONCILE_CONFIRMATIONS
	CANNOT_CALCULATE_COMMISSIONS
	CANNOT_CALCULATE_RANKING
	CANNOT_CALCULATE_GOAL_PROGRESS
	CANNOT_UPGRADE_WEBSOCKET
	UNEXPECTED_PANIC
)

func SendInternalError(internalErrorCode int) string {
	return fmt.Sprintf("Ocorreu um erro interno no servidor. Por favor, tente novamente mais tarde (Cod: %d)", internalErrorCode)
}
