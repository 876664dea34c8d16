package server

import (
	"net/http"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/labstack/echo/v4"

	"github.com/productscience/tokenvesting/internal/devnet"
)

func (s *Server) getStatus(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, StatusResponse{
		Status:    "ok",
		ChainID:   devnet.ChainID,
		Height:    s.chain.Height(),
		BlockTime: s.chain.Now(),
	})
}

func (s *Server) getSchedule(ctx echo.Context) error {
	resp, err := s.chain.Schedule()
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(http.StatusOK, ScheduleResponse{
		Schedule:       resp.Schedule,
		StartTime:      resp.Schedule.StartTime(),
		CliffTime:      resp.Schedule.CliffTime(),
		EndTime:        resp.Schedule.EndTime(),
		BlockTime:      resp.BlockTime,
		Vested:         resp.Vested,
		Payable:        resp.Payable,
		VestedFraction: resp.VestedFraction,
		CustodyAddress: s.chain.CustodyAddress().String(),
		Custody:        resp.Custody,
		FullyReleased:  resp.FullyReleased,
	})
}

func (s *Server) getVestedAt(ctx echo.Context) error {
	atParam := ctx.QueryParam("at")
	if atParam == "" {
		return ErrAtRequired
	}
	at, err := time.Parse(time.RFC3339, atParam)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "at must be RFC3339: "+err.Error())
	}

	resp, err := s.chain.VestedAt(at)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(http.StatusOK, VestedAtResponse{At: resp.At, Vested: resp.Vested})
}

func (s *Server) bindCaller(ctx echo.Context) (string, error) {
	var req CallerRequest
	if err := ctx.Bind(&req); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Caller == "" {
		return "", ErrCallerRequired
	}
	return req.Caller, nil
}

func (s *Server) postWithdraw(ctx echo.Context) error {
	caller, err := s.bindCaller(ctx)
	if err != nil {
		return err
	}

	amount, err := s.chain.Withdraw(caller)
	if err != nil {
		s.logger.Info("Withdraw rejected", "caller", caller, "error", err)
		return toHTTPError(err)
	}
	return ctx.JSON(http.StatusOK, WithdrawResponse{Amount: amount})
}

func (s *Server) postRevoke(ctx echo.Context) error {
	caller, err := s.bindCaller(ctx)
	if err != nil {
		return err
	}

	reclaimed, err := s.chain.Revoke(caller)
	if err != nil {
		s.logger.Info("Revoke rejected", "caller", caller, "error", err)
		return toHTTPError(err)
	}
	return ctx.JSON(http.StatusOK, RevokeResponse{Reclaimed: reclaimed})
}

func (s *Server) postClockAdvance(ctx echo.Context) error {
	clock, ok := s.chain.Clock().(*devnet.ManualClock)
	if !ok {
		return ErrClockNotManual
	}

	var req AdvanceClockRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	d, err := time.ParseDuration(req.Duration)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "duration: "+err.Error())
	}

	now, err := clock.Advance(d)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.logger.Info("Clock advanced", "by", d, "block_time", now)
	return ctx.JSON(http.StatusOK, AdvanceClockResponse{BlockTime: now})
}

func (s *Server) getBalances(ctx echo.Context) error {
	address := ctx.Param("address")
	addr, err := sdk.AccAddressFromBech32(address)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid address: "+err.Error())
	}
	return ctx.JSON(http.StatusOK, BalancesResponse{
		Address:  address,
		Balances: s.chain.Balances(addr),
	})
}

func (s *Server) getGenesis(ctx echo.Context) error {
	bz, err := s.chain.ExportGenesis().MarshalJSON()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return ctx.JSONBlob(http.StatusOK, bz)
}
