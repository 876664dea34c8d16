package server

import (
	"net/http"

	errorsmod "cosmossdk.io/errors"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/labstack/echo/v4"

	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

var (
	ErrCallerRequired = echo.NewHTTPError(http.StatusBadRequest, "caller is required")
	ErrAtRequired     = echo.NewHTTPError(http.StatusBadRequest, "at is required")
	ErrClockNotManual = echo.NewHTTPError(http.StatusConflict, "clock is not manual")
)

// toHTTPError maps module errors to a status code, keeping the wrapped message.
func toHTTPError(err error) *echo.HTTPError {
	code := http.StatusInternalServerError
	switch {
	case errorsmod.IsOf(err, types.ErrUnauthorized):
		code = http.StatusForbidden
	case errorsmod.IsOf(err, types.ErrNotYetVested, types.ErrNothingDue, types.ErrNotRevocable, types.ErrAlreadyRevoked, types.ErrScheduleExists):
		code = http.StatusConflict
	case errorsmod.IsOf(err, types.ErrScheduleNotFound):
		code = http.StatusNotFound
	case errorsmod.IsOf(err, types.ErrTransferFailed):
		code = http.StatusBadGateway
	case errorsmod.IsOf(err, types.ErrInvalidSchedule, sdkerrors.ErrInvalidAddress, sdkerrors.ErrInvalidRequest):
		code = http.StatusBadRequest
	}
	return echo.NewHTTPError(code, err.Error())
}
