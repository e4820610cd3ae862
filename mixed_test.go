package qnotebook

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const testTolerance = 1e-12

func randomState(rng *rand.Rand, qubits int) StateVector {
	sv := make(StateVector, 1<<qubits)
	for i := range sv {
		sv[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	return sv.Normalized()
}

func TestMixedStateBuilder(t *testing.T) {
	Convey("Given a mixed state builder", t, func() {
		builder := NewMixedStateBuilder(NewConfig())
		bell := NewStateVector(1, 0, 0, 1).Normalized()

		Convey("When visibility is 0.8 on a Bell state", func() {
			rho := builder.Build(bell, 0.8)

			Convey("The entries should interpolate the pure and mixed parts", func() {
				So(rho.Dims(), ShouldEqual, 4)
				So(real(rho.At(0, 0)), ShouldAlmostEqual, 0.45, testTolerance)
				So(real(rho.At(0, 3)), ShouldAlmostEqual, 0.4, testTolerance)
				So(real(rho.At(3, 0)), ShouldAlmostEqual, 0.4, testTolerance)
				So(real(rho.At(1, 1)), ShouldAlmostEqual, 0.05, testTolerance)
				So(real(rho.At(2, 2)), ShouldAlmostEqual, 0.05, testTolerance)
				So(real(rho.At(1, 2)), ShouldEqual, 0.0)
			})

			Convey("It should be a valid state", func() {
				So(real(rho.Trace()), ShouldAlmostEqual, 1, testTolerance)
				So(rho.IsHermitian(testTolerance), ShouldBeTrue)
				So(rho.Purity(), ShouldBeBetween, 0.25, 1.0)
			})
		})

		Convey("When visibility is 1", func() {
			Convey("It should equal the outer product exactly", func() {
				rng := rand.New(rand.NewSource(7))
				for qubits := 1; qubits <= 3; qubits++ {
					p := randomState(rng, qubits)
					So(builder.Build(p, 1).EqualApprox(p.Outer(), 0), ShouldBeTrue)
				}
			})
		})

		Convey("When visibility is 0", func() {
			Convey("It should be the maximally mixed state whatever the input", func() {
				rng := rand.New(rand.NewSource(11))
				for qubits := 1; qubits <= 4; qubits++ {
					p := randomState(rng, qubits)
					So(builder.Build(p, 0).EqualApprox(MaximallyMixed(1<<qubits), 0), ShouldBeTrue)
				}
			})
		})

		Convey("For arbitrary states and visibilities", func() {
			rng := rand.New(rand.NewSource(42))

			Convey("Trace should be 1 and the matrix Hermitian", func() {
				for i := 0; i < 50; i++ {
					p := randomState(rng, 1+rng.Intn(3))
					v := rng.Float64()
					rho := builder.Build(p, v)

					trace := rho.Trace()
					So(real(trace), ShouldAlmostEqual, 1, 1e-9)
					So(math.Abs(imag(trace)), ShouldBeLessThan, 1e-9)
					So(rho.IsHermitian(1e-9), ShouldBeTrue)
				}
			})

			Convey("Build should be affine in visibility", func() {
				p := randomState(rng, 2)
				zero := builder.Build(p, 0)
				one := builder.Build(p, 1)
				half := builder.Build(p, 0.5)

				for i := 0; i < 4; i++ {
					for j := 0; j < 4; j++ {
						mean := (zero.At(i, j) + one.At(i, j)) / 2
						So(real(half.At(i, j)), ShouldAlmostEqual, real(mean), testTolerance)
						So(imag(half.At(i, j)), ShouldAlmostEqual, imag(mean), testTolerance)
					}
				}
			})
		})

		Convey("The mixed part should follow the input dimension", func() {
			single := builder.Build(NewStateVector(1, 0), 0)
			So(single.Dims(), ShouldEqual, 2)
			So(real(single.At(0, 0)), ShouldEqual, 0.5)

			triple := builder.Build(make(StateVector, 8), 0)
			So(real(triple.At(5, 5)), ShouldEqual, 0.125)
		})

		Convey("Out of contract input should still build", func() {
			rho := builder.Build(bell, 1.5)
			So(real(rho.At(1, 1)), ShouldAlmostEqual, -0.125, testTolerance)
			So(real(rho.Trace()), ShouldAlmostEqual, 1, testTolerance)

			So(builder.Build(nil, 0.5).Dims(), ShouldEqual, 0)
		})

		Convey("When validating", func() {
			So(builder.Validate(bell, 0.8), ShouldBeNil)

			_, err := builder.BuildChecked(NewStateVector(1, 0, 0), 0.5)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)

			_, err = builder.BuildChecked(bell, -0.1)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)

			_, err = builder.BuildChecked(bell, math.NaN())
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)

			_, err = builder.BuildChecked(NewStateVector(1, 1), 0.5)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)

			rho, err := builder.BuildChecked(bell, 0.8)
			So(err, ShouldBeNil)
			So(rho.EqualApprox(builder.Build(bell, 0.8), 0), ShouldBeTrue)
		})
	})
}
