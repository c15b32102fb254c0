package snap

import (
	"net/http"
	"testing"

	"github.com/rhandyus/senjagames-sub001/pkg/settlement"
	"github.com/stretchr/testify/assert"
)

func TestMapOutcome(t *testing.T) {
	cases := []struct {
		outcome settlement.Outcome
		status  int
		code    string
	}{
		{settlement.OutcomeSettled, http.StatusOK, "2002500"},
		{settlement.OutcomeMissingHeaders, http.StatusBadRequest, "4000000"},
		{settlement.OutcomeInvalidSignature, http.StatusUnauthorized, "4010000"},
		{settlement.OutcomeTransactionNotFound, http.StatusNotFound, "4040000"},
		{settlement.OutcomeAmountMismatch, http.StatusBadRequest, "4000001"},
		{settlement.OutcomeInternalError, http.StatusInternalServerError, "5000000"},
		{settlement.Outcome("something-new"), http.StatusInternalServerError, "5000000"},
	}

	for _, c := range cases {
		status, body := MapOutcome(c.outcome)
		assert.Equal(t, c.status, status, "outcome %s", c.outcome)
		assert.Equal(t, c.code, body.ResponseCode, "outcome %s", c.outcome)
		assert.NotEmpty(t, body.ResponseMessage)
	}
}
