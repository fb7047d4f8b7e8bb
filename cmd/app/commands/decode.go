package commands

import (
	"context"
	"fmt"

	uidDomain "github.com/allisson/uids/internal/uid/domain"
	uidUseCase "github.com/allisson/uids/internal/uid/usecase"
)

// RunDecode prints the variant and value a token stands for.
func RunDecode(
	ctx context.Context,
	useCase uidUseCase.UidUseCase,
	io IOTuple,
	token string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	uid, err := useCase.Decode(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to decode token: %w", err)
	}

	variant := uid.Variant().Name
	value := uidDomain.FormatUid(uid)

	if format == "json" {
		return writeJSON(io.Writer, map[string]string{
			"variant": variant,
			"value":   value,
		})
	}

	_, _ = fmt.Fprintf(io.Writer, "%s %s\n", variant, value)
	return nil
}
