package server

import (
	"crypto/subtle"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

// ZstdMiddleware inflates zstd request bodies up to maxDecodedSize bytes and
// zstd-encodes buffered responses when the client asks for it. Routes in skip
// are passed through untouched, as are streamed responses.
func ZstdMiddleware(maxDecodedSize int, skip []string) fiber.Handler {
	if maxDecodedSize <= 0 {
		maxDecodedSize = DefaultBodyLimit
	}
	// Both are safe for concurrent DecodeAll/EncodeAll calls.
	decoder, decErr := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(0),
		zstd.WithDecoderMaxMemory(uint64(maxDecodedSize)))
	encoder, encErr := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if decErr != nil || encErr != nil {
		log.Error().AnErr("decoder", decErr).AnErr("encoder", encErr).Msg("zstd codec unavailable")
	}

	return func(c *fiber.Ctx) error {
		if isWhitelisted(c.Path(), skip) {
			return c.Next()
		}
		if strings.EqualFold(c.Get(fiber.HeaderContentEncoding), "zstd") {
			if decErr != nil {
				return fiber.NewError(fiber.StatusUnsupportedMediaType, "zstd request bodies are not supported")
			}
			if err := inflateBody(c, decoder); err != nil {
				return err
			}
		}

		if err := c.Next(); err != nil {
			return err
		}
		if encErr == nil && strings.Contains(strings.ToLower(c.Get(fiber.HeaderAcceptEncoding)), "zstd") {
			deflateBody(c, encoder)
		}
		return nil
	}
}

func inflateBody(c *fiber.Ctx, decoder *zstd.Decoder) error {
	compressed := c.Body()
	if len(compressed) == 0 {
		return nil
	}
	body, err := decoder.DecodeAll(compressed, nil)
	switch {
	case errors.Is(err, zstd.ErrDecoderSizeExceeded):
		log.Warn().Int("compressed", len(compressed)).Msg("zstd body exceeds the body limit once inflated")
		return fiber.ErrRequestEntityTooLarge
	case err != nil:
		log.Debug().Err(err).Msg("zstd body is not decodable")
		return fiber.NewError(fiber.StatusBadRequest, "malformed zstd body")
	}
	c.Request().SetBody(body)
	c.Request().Header.Del(fiber.HeaderContentEncoding)
	log.Trace().Int("compressed", len(compressed)).Int("inflated", len(body)).Msg("request body inflated")
	return nil
}

// deflateBody leaves streamed responses alone since they are not buffered yet.
func deflateBody(c *fiber.Ctx, encoder *zstd.Encoder) {
	resp := c.Response()
	if resp.IsBodyStream() || len(resp.Body()) == 0 {
		return
	}
	plain := len(resp.Body())
	resp.SetBody(encoder.EncodeAll(resp.Body(), nil))
	c.Set(fiber.HeaderContentEncoding, "zstd")
	c.Set(fiber.HeaderContentLength, strconv.Itoa(len(resp.Body())))
	log.Trace().Int("plain", plain).Int("encoded", len(resp.Body())).Msg("response body encoded")
}

// APIKeyMiddleware rejects requests whose x-api-key header does not exactly
// match apiKey. It runs before any handler so rejected requests do no work.
func APIKeyMiddleware(apiKey string, whitelistedRoutes []string) fiber.Handler {
	expected := []byte(apiKey)
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions || isWhitelisted(c.Path(), whitelistedRoutes) {
			return c.Next()
		}

		provided := c.Get(APIKeyHeader)
		if len(expected) == 0 || provided == "" ||
			subtle.ConstantTimeCompare([]byte(provided), expected) != 1 {
			log.Warn().
				Str("path", c.Path()).
				Bool("header_present", provided != "").
				Msg("Rejected request with invalid API key")
			return fiber.NewError(fiber.StatusUnauthorized, invalidAPIKeyMessage)
		}
		return c.Next()
	}
}

// RequestLogMiddleware logs one line per request once the handler chain returns.
func RequestLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if err != nil {
			status = fiber.StatusInternalServerError
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request handled")
		return err
	}
}
