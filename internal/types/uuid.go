package types

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex contract_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

// initializeSID initializes the shortid generator once
func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortIDWithPrefix returns a short ID with a prefix.
// Total length is capped at 12 characters, e.g., `CT-xYZ12A8Q`.
func GenerateShortIDWithPrefix(prefix string) string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}
	id = strings.ReplaceAll(id, "-", "")

	availableLen := 12 - len(prefix)
	if availableLen <= 0 {
		return ""
	}

	if len(id) > availableLen {
		id = id[:availableLen]
	}

	return strings.ToUpper(fmt.Sprintf("%s%s", prefix, id))
}

// GenerateContractNumber returns a human-facing contract number like
// CT-20260830-4XK2ZQ. Numbers are assigned once at creation and never change.
func GenerateContractNumber() string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		id = GenerateUUID()
	}
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 6 {
		id = id[:6]
	}

	return fmt.Sprintf("%s%s-%s",
		SHORT_ID_PREFIX_CONTRACT,
		time.Now().UTC().Format("20060102"),
		strings.ToUpper(id),
	)
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_CONTRACT           = "contract"
	UUID_PREFIX_CONTRACT_LINE_ITEM = "cont_line"
	UUID_PREFIX_PRODUCT            = "prod"
	UUID_PREFIX_CUSTOMER           = "cust"
	UUID_PREFIX_LEAD               = "lead"
	UUID_PREFIX_APPROVAL           = "appr"
	UUID_PREFIX_USER               = "user"
)

const (
	SHORT_ID_PREFIX_CONTRACT = "CT-"
)
