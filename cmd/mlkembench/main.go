// mlkembench times key generation, encapsulation, and decapsulation across
// all three ML-KEM parameter sets and prints the mean time per operation.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package main

import (
	"crypto/rand"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/kyber-go/mlkem"
)

const iterations = 200

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	for _, ps := range []*mlkem.ParameterSet{mlkem.MLKEM512, mlkem.MLKEM768, mlkem.MLKEM1024} {
		if err := benchmarkParameterSet(logger, ps); err != nil {
			logger.Fatal().Err(err).Str("parameter_set", ps.Name()).Msg("benchmark failed")
		}
	}
}

func benchmarkParameterSet(logger zerolog.Logger, ps *mlkem.ParameterSet) error {
	keyGenElapsed, pk, sk, err := timeKeyGen(ps)
	if err != nil {
		return err
	}

	encapsElapsed, ct, ss, err := timeEncapsulate(pk)
	if err != nil {
		return err
	}

	decapsElapsed, err := timeDecapsulate(sk, ct, ss)
	if err != nil {
		return err
	}

	fmt.Printf("%s: keygen=%s encapsulate=%s decapsulate=%s (n=%d)\n",
		ps.Name(),
		perOp(keyGenElapsed, iterations),
		perOp(encapsElapsed, iterations),
		perOp(decapsElapsed, iterations),
		iterations,
	)
	return nil
}

func timeKeyGen(ps *mlkem.ParameterSet) (time.Duration, *mlkem.PublicKey, *mlkem.PrivateKey, error) {
	var pk *mlkem.PublicKey
	var sk *mlkem.PrivateKey
	start := time.Now()
	for i := 0; i < iterations; i++ {
		var err error
		pk, sk, err = ps.GenerateKeyPair(rand.Reader)
		if err != nil {
			return 0, nil, nil, err
		}
	}
	return time.Since(start), pk, sk, nil
}

func timeEncapsulate(pk *mlkem.PublicKey) (time.Duration, *mlkem.Ciphertext, []byte, error) {
	var ct *mlkem.Ciphertext
	var ss []byte
	start := time.Now()
	for i := 0; i < iterations; i++ {
		var err error
		ct, ss, err = pk.Encapsulate(rand.Reader)
		if err != nil {
			return 0, nil, nil, err
		}
	}
	return time.Since(start), ct, ss, nil
}

func timeDecapsulate(sk *mlkem.PrivateKey, ct *mlkem.Ciphertext, want []byte) (time.Duration, error) {
	start := time.Now()
	for i := 0; i < iterations; i++ {
		got, err := sk.Decapsulate(ct)
		if err != nil {
			return 0, err
		}
		if i == 0 && string(got) != string(want) {
			return 0, fmt.Errorf("mlkembench: decapsulated shared secret did not match encapsulated value")
		}
	}
	return time.Since(start), nil
}

func perOp(elapsed time.Duration, n int) time.Duration {
	return elapsed / time.Duration(n)
}
