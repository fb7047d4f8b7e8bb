package app

import (
	"context"
	"fmt"
	"time"

	"github.com/allisson/uids/internal/metrics"
	uidDomain "github.com/allisson/uids/internal/uid/domain"
	uidHTTP "github.com/allisson/uids/internal/uid/http"
	"github.com/allisson/uids/internal/uid/provider"
	uidService "github.com/allisson/uids/internal/uid/service"
	uidUseCase "github.com/allisson/uids/internal/uid/usecase"
)

const secretLoadTimeout = 30 * time.Second

// KMSService returns the KMS service used to unwrap the shared secret.
func (c *Container) KMSService() uidService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = uidService.NewKMSService()
	})
	return c.kmsService
}

// Secret returns the shared secret, unwrapping it through KMS when configured.
func (c *Container) Secret() ([]byte, error) {
	var err error
	c.secretInit.Do(func() {
		c.secret, err = c.initSecret()
		if err != nil {
			c.setInitError("secret", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("secret"); storedErr != nil {
		return nil, storedErr
	}
	return c.secret, nil
}

// UidUseCase returns the codec facade, wrapped with metrics when enabled.
func (c *Container) UidUseCase() (uidUseCase.UidUseCase, error) {
	var err error
	c.uidUseCaseInit.Do(func() {
		c.uidUseCase, err = c.initUidUseCase()
		if err != nil {
			c.setInitError("uidUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("uidUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.uidUseCase, nil
}

// UidHandler returns the HTTP handler for the codec endpoints.
func (c *Container) UidHandler() (*uidHTTP.UidHandler, error) {
	var err error
	c.uidHandlerInit.Do(func() {
		c.uidHandler, err = c.initUidHandler()
		if err != nil {
			c.setInitError("uidHandler", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("uidHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.uidHandler, nil
}

// ContextPool returns the cipher context pool backing the codec.
func (c *Container) ContextPool() (*uidService.ContextPool, error) {
	if _, err := c.UidUseCase(); err != nil {
		return nil, err
	}
	return c.contextPool, nil
}

func (c *Container) initSecret() ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), secretLoadTimeout)
	defer cancel()

	secret, err := uidService.LoadSecret(ctx, c.KMSService(), uidService.SecretSource{
		Raw:        c.config.UIDSecret,
		Ciphertext: c.config.UIDSecretCiphertext,
		KMSKeyURI:  c.config.KMSKeyURI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load uid secret: %w", err)
	}
	return secret, nil
}

func (c *Container) initUidUseCase() (uidUseCase.UidUseCase, error) {
	secret, err := c.Secret()
	if err != nil {
		return nil, err
	}

	baseUseCase, pool, err := uidUseCase.New(uidUseCase.Config{
		Secret:         secret,
		Algorithm:      uidDomain.Algorithm(c.config.UIDCipher),
		Concurrency:    c.config.UIDPoolConcurrency,
		AcquireTimeout: c.config.UIDPoolAcquireTimeout,
	}, provider.Defaults()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create uid use case: %w", err)
	}
	c.contextPool = pool

	if !c.config.MetricsEnabled {
		return baseUseCase, nil
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for uid use case: %w", err)
	}
	c.poolRegistration, err = metrics.RegisterPoolMetrics(
		metricsProvider.MeterProvider(),
		metricsProvider.Namespace(),
		pool,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register pool metrics: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for uid use case: %w", err)
	}
	return uidUseCase.NewUidUseCaseWithMetrics(baseUseCase, businessMetrics), nil
}

func (c *Container) initUidHandler() (*uidHTTP.UidHandler, error) {
	useCase, err := c.UidUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get uid use case for handler: %w", err)
	}
	return uidHTTP.NewUidHandler(useCase, c.config.BatchMaxSize, c.Logger()), nil
}
