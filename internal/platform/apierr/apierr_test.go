package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ToHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{New(CodeInvalidDateRange, "x"), http.StatusBadRequest},
		{New(CodeNotAvailable, "x"), http.StatusBadRequest},
		{New(CodeNoOpenTransaction, "x"), http.StatusBadRequest},
		{New(CodeNotPrivileged, "x"), http.StatusForbidden},
		{New(CodeBookNotFound, "x"), http.StatusNotFound},
		{New(CodeTransactionNotFound, "x"), http.StatusNotFound},
		{New(CodeDuplicateISBN, "x"), http.StatusConflict},
		{ErrConflict("x"), http.StatusConflict},
		{New(CodeUnauthorized, "x"), http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", New(CodeCustomerNotFound, "x")), http.StatusNotFound},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ToHTTPStatus(tc.err), tc.err.Error())
	}
}

func Test_Is(t *testing.T) {
	err := fmt.Errorf("ctx: %w", New(CodeNotAvailable, "book is borrowed"))
	assert.True(t, Is(err, CodeNotAvailable))
	assert.False(t, Is(err, CodeBookNotFound))
	assert.False(t, Is(errors.New("plain"), CodeNotAvailable))
	assert.Equal(t, CodeNotAvailable, CodeOf(err))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func Test_BodyFrom_HidesStorageErrors(t *testing.T) {
	b := BodyFrom(errors.New("dial tcp 10.0.0.1:3306: connection refused"))
	assert.Equal(t, CodeInternal, b.Error.Code)
	assert.Equal(t, "internal error", b.Error.Message)

	b = BodyFrom(New(CodeDuplicateName, "author already exists"))
	assert.Equal(t, CodeDuplicateName, b.Error.Code)
	assert.Equal(t, "author already exists", b.Error.Message)
}
