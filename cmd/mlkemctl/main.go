// mlkemctl is a small command-line exerciser for the mlkem package: it runs
// one full generate/encapsulate/decapsulate cycle at the requested security
// level and reports whether the recovered shared secret matched.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package main

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kyber-go/mlkem"
)

var tracer = otel.Tracer("mlkemctl")

func main() {
	app := &cli.App{
		Name:      "mlkemctl",
		Usage:     "exercise ML-KEM key generation, encapsulation, and decapsulation",
		ArgsUsage: "SECURITYLEVEL",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "rng-seed",
				Usage: "64 hex-encoded bytes of deterministic key generation seed (omit for OS entropy)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "debug, info, warn, or error",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	level, err := zerolog.ParseLevel(c.String("log-level"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid log level: %v", err), 1)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()
	otel.SetTracerProvider(tp)

	secLevel := c.Args().First()
	if secLevel == "" {
		secLevel = "768"
	}

	ps, err := parameterSetForFlag(secLevel)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	logger.Info().Str("parameter_set", ps.Name()).Msg("selected security level")

	ctx, span := tracer.Start(context.Background(), "mlkemctl.run")
	defer span.End()

	pk, sk, err := generateKeyPair(ctx, logger, ps, c.String("rng-seed"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	ct, ssEnc, err := encapsulate(ctx, logger, pk)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	ssDec, err := decapsulate(ctx, logger, sk, ct)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	match := bytes.Equal(ssEnc, ssDec)
	logger.Info().Bool("shared_secret_match", match).Msg("round trip complete")
	if !match {
		return cli.Exit("shared secrets did not match", 1)
	}
	return nil
}

func parameterSetForFlag(secLevel string) (*mlkem.ParameterSet, error) {
	switch secLevel {
	case "512":
		return mlkem.MLKEM512, nil
	case "768":
		return mlkem.MLKEM768, nil
	case "1024":
		return mlkem.MLKEM1024, nil
	default:
		return nil, fmt.Errorf("mlkemctl: unknown security level %q, want one of 512, 768, 1024", secLevel)
	}
}

func generateKeyPair(ctx context.Context, logger zerolog.Logger, ps *mlkem.ParameterSet, rngSeedHex string) (*mlkem.PublicKey, *mlkem.PrivateKey, error) {
	_, span := tracer.Start(ctx, "mlkemctl.generateKeyPair")
	defer span.End()

	var (
		pk  *mlkem.PublicKey
		sk  *mlkem.PrivateKey
		err error
	)
	if rngSeedHex != "" {
		seed, decodeErr := hex.DecodeString(rngSeedHex)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("mlkemctl: invalid --rng-seed: %w", decodeErr)
		}
		pk, sk, err = ps.GenerateKeyPairFromSeed(seed)
	} else {
		pk, sk, err = ps.GenerateKeyPair(rand.Reader)
	}
	if err != nil {
		logger.Error().Err(err).Msg("key generation failed")
		return nil, nil, err
	}
	logger.Debug().Int("public_key_bytes", len(pk.Bytes())).Msg("generated key pair")
	return pk, sk, nil
}

func encapsulate(ctx context.Context, logger zerolog.Logger, pk *mlkem.PublicKey) (ct *mlkem.Ciphertext, sharedSecret []byte, err error) {
	_, span := tracer.Start(ctx, "mlkemctl.encapsulate")
	defer span.End()

	ct, sharedSecret, err = pk.Encapsulate(rand.Reader)
	if err != nil {
		logger.Error().Err(err).Msg("encapsulation failed")
		return nil, nil, err
	}
	logger.Debug().Int("ciphertext_bytes", len(ct.AsBytes())).Msg("encapsulated shared secret")
	return ct, sharedSecret, nil
}

func decapsulate(ctx context.Context, logger zerolog.Logger, sk *mlkem.PrivateKey, ct *mlkem.Ciphertext) ([]byte, error) {
	_, span := tracer.Start(ctx, "mlkemctl.decapsulate")
	defer span.End()

	sharedSecret, err := sk.Decapsulate(ct)
	if err != nil {
		logger.Error().Err(err).Msg("decapsulation failed")
		return nil, err
	}
	return sharedSecret, nil
}
