package commands

import (
	"context"
	"fmt"

	uidDomain "github.com/allisson/uids/internal/uid/domain"
	uidUseCase "github.com/allisson/uids/internal/uid/usecase"
)

// RunEncode parses value as an identifier of the named variant and prints its token.
func RunEncode(
	ctx context.Context,
	useCase uidUseCase.UidUseCase,
	io IOTuple,
	variant string,
	value string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	uid, err := uidDomain.ParseUid(variant, value)
	if err != nil {
		return err
	}

	token, err := useCase.Encode(ctx, uid)
	if err != nil {
		return fmt.Errorf("failed to encode identifier: %w", err)
	}

	if format == "json" {
		return writeJSON(io.Writer, map[string]string{
			"variant": uid.Variant().Name,
			"value":   uidDomain.FormatUid(uid),
			"token":   token,
		})
	}

	_, _ = fmt.Fprintln(io.Writer, token)
	return nil
}
