package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/productscience/tokenvesting/internal/devnet"
	"github.com/productscience/tokenvesting/testutil/sample"
	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

const denom = "nicoin"

var genesisTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

type ServerTestSuite struct {
	suite.Suite

	chain         *devnet.Chain
	server        *Server
	beneficiary   string
	administrator string
}

func (s *ServerTestSuite) SetupTest() {
	chain, err := devnet.NewChain(log.NewNopLogger(), devnet.NewManualClock(genesisTime))
	s.Require().NoError(err)

	funder := sample.AccAddressBytes()
	s.beneficiary = sample.AccAddress()
	s.administrator = sample.AccAddress()
	s.Require().NoError(chain.Fund(funder, sdk.NewCoins(sdk.NewInt64Coin(denom, 900))))

	schedule := types.NewVestingSchedule(s.beneficiary, s.administrator, denom, genesisTime.Add(time.Minute), 3*time.Minute, 15*time.Minute, true, math.NewInt(900))
	_, err = chain.CreateSchedule(types.NewMsgCreateSchedule(funder.String(), schedule))
	s.Require().NoError(err)

	s.chain = chain
	s.server = NewServer(chain, log.NewNopLogger())
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.server.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) decode(rec *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), out))
}

func (s *ServerTestSuite) advance(duration string) {
	rec := s.do(http.MethodPost, "/v1/clock/advance", `{"duration":"`+duration+`"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *ServerTestSuite) TestStatus() {
	rec := s.do(http.MethodGet, "/v1/status", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp StatusResponse
	s.decode(rec, &resp)
	s.Require().Equal("ok", resp.Status)
	s.Require().Equal(devnet.ChainID, resp.ChainID)
	s.Require().True(genesisTime.Equal(resp.BlockTime))
}

func (s *ServerTestSuite) TestSchedule() {
	s.advance("9m")

	rec := s.do(http.MethodGet, "/v1/schedule", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp ScheduleResponse
	s.decode(rec, &resp)
	s.Require().Equal(s.beneficiary, resp.Schedule.Beneficiary)
	s.Require().Equal(math.NewInt(480), resp.Vested)
	s.Require().Equal(math.NewInt(480), resp.Payable)
	s.Require().Equal(sdk.NewInt64Coin(denom, 900), resp.Custody)
	s.Require().Equal(s.chain.CustodyAddress().String(), resp.CustodyAddress)
	s.Require().True(genesisTime.Add(4 * time.Minute).Equal(resp.CliffTime))
}

func (s *ServerTestSuite) TestVestedAt() {
	rec := s.do(http.MethodGet, "/v1/schedule/vested?at=2024-01-01T00:16:00Z", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp VestedAtResponse
	s.decode(rec, &resp)
	s.Require().Equal(math.NewInt(900), resp.Vested)

	s.Require().Equal(http.StatusBadRequest, s.do(http.MethodGet, "/v1/schedule/vested", "").Code)
	s.Require().Equal(http.StatusBadRequest, s.do(http.MethodGet, "/v1/schedule/vested?at=soon", "").Code)
}

func (s *ServerTestSuite) TestWithdraw() {
	rec := s.do(http.MethodPost, "/v1/schedule/withdraw", `{"caller":"`+s.beneficiary+`"}`)
	s.Require().Equal(http.StatusConflict, rec.Code, "cliff not reached")

	s.advance("4m")
	rec = s.do(http.MethodPost, "/v1/schedule/withdraw", `{"caller":"`+s.administrator+`"}`)
	s.Require().Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPost, "/v1/schedule/withdraw", `{"caller":"`+s.beneficiary+`"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var resp WithdrawResponse
	s.decode(rec, &resp)
	s.Require().Equal(sdk.NewInt64Coin(denom, 180), resp.Amount)

	rec = s.do(http.MethodPost, "/v1/schedule/withdraw", `{"caller":"`+s.beneficiary+`"}`)
	s.Require().Equal(http.StatusConflict, rec.Code, "nothing due")

	rec = s.do(http.MethodPost, "/v1/schedule/withdraw", `{}`)
	s.Require().Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestWithdrawTransferFailure() {
	s.advance("20m")
	beneficiary, err := sdk.AccAddressFromBech32(s.beneficiary)
	s.Require().NoError(err)
	s.chain.Ledger().BlockAddress(beneficiary)

	rec := s.do(http.MethodPost, "/v1/schedule/withdraw", `{"caller":"`+s.beneficiary+`"}`)
	s.Require().Equal(http.StatusBadGateway, rec.Code)
}

func (s *ServerTestSuite) TestRevokeAndBalances() {
	s.advance("7m")

	rec := s.do(http.MethodPost, "/v1/schedule/revoke", `{"caller":"`+s.beneficiary+`"}`)
	s.Require().Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPost, "/v1/schedule/revoke", `{"caller":"`+s.administrator+`"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var resp RevokeResponse
	s.decode(rec, &resp)
	s.Require().Equal(sdk.NewInt64Coin(denom, 540), resp.Reclaimed)

	rec = s.do(http.MethodPost, "/v1/schedule/revoke", `{"caller":"`+s.administrator+`"}`)
	s.Require().Equal(http.StatusConflict, rec.Code)

	rec = s.do(http.MethodGet, "/v1/balances/"+s.administrator, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var balances BalancesResponse
	s.decode(rec, &balances)
	s.Require().Equal("540nicoin", balances.Balances.String())

	s.Require().Equal(http.StatusBadRequest, s.do(http.MethodGet, "/v1/balances/nobody", "").Code)
}

func (s *ServerTestSuite) TestClockAdvanceRejectsBadInput() {
	s.Require().Equal(http.StatusBadRequest, s.do(http.MethodPost, "/v1/clock/advance", `{"duration":"-1m"}`).Code)
	s.Require().Equal(http.StatusBadRequest, s.do(http.MethodPost, "/v1/clock/advance", `{"duration":"later"}`).Code)
}

func (s *ServerTestSuite) TestGenesis() {
	rec := s.do(http.MethodGet, "/v1/genesis", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	gen, err := devnet.UnmarshalGenesis(rec.Body.Bytes())
	s.Require().NoError(err)
	s.Require().NotNil(gen.TokenVesting.Schedule)
	s.Require().Equal(s.beneficiary, gen.TokenVesting.Schedule.Beneficiary)
}

func TestServer_WallClockRejectsAdvance(t *testing.T) {
	chain, err := devnet.NewChain(log.NewNopLogger(), devnet.WallClock{})
	require.NoError(t, err)
	server := NewServer(chain, log.NewNopLogger())

	req := httptest.NewRequest(http.MethodPost, "/v1/clock/advance", strings.NewReader(`{"duration":"1m"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusConflict, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/schedule", nil)
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
