package mid

import (
	"context"
	"net/http"

	"github.com/workforcehq/jobboard/app/sdk/errs"
	"github.com/workforcehq/jobboard/app/sdk/metrics"
	"github.com/workforcehq/jobboard/business/sdk/web"
	"github.com/workforcehq/jobboard/foundation/logger"
)

// Errors handles errors coming out of the call chain. It detects normal
// application errors which are used to respond to the client in a uniform way
// and unknown errors which are always reported as an internal failure with
// the detail kept server side.
func Errors(log *logger.Logger) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)

			err := checkIsError(resp)
			if err == nil {
				return resp
			}

			metrics.AddErrors(ctx)

			switch v := resp.(type) {
			case *errs.Error:
				log.Error(ctx, "handled error during request",
					"err", err, "source_err_file", v.FileName, "source_err_func", v.FuncName)

				if v.Code == errs.InternalOnlyLog {
					v = errs.Errorf(errs.Internal, "internal server error")
				}

				return v

			case errs.FieldErrors:
				log.Error(ctx, "handled field errors during request", "err", err)
				return v

			default:
				log.Error(ctx, "unhandled error during request", "err", err)
				return errs.Errorf(errs.Internal, "internal server error")
			}
		}

		return h
	}

	return m
}
