package postgres

import (
	"fmt"
	"time"
)

const (
	poolHealthCheckPeriod = time.Minute
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second

	errFailedParseDatabaseConfigFmt  = "failed to parse database config: %w"
	errFailedCreateConnectionPoolFmt = "failed to create connection pool: %w"
	errFailedPingDatabaseFmt         = "failed to ping database: %w"
	errFailedStartTransactionFmt     = "failed to start transaction: %w"
	errFailedCommitTransactionFmt    = "failed to commit transaction: %w"

	errFailedCreateProjectFmt = "failed to create project: %w"
	errFailedGetProjectFmt    = "failed to get project: %w"
	errFailedListProjectsFmt  = "failed to list projects: %w"
	errFailedScanProjectFmt   = "failed to scan project: %w"
	errFailedUpdateProjectFmt = "failed to update project: %w"
	errFailedDeleteProjectFmt = "failed to delete project: %w"

	errFailedCreateClientFmt = "failed to create client: %w"
	errFailedGetClientFmt    = "failed to get client: %w"
	errFailedUpdateClientFmt = "failed to update client: %w"

	errFailedCreateScopeItemFmt = "failed to create scope item: %w"
	errFailedListScopeItemsFmt  = "failed to list scope items: %w"
	errFailedScanScopeItemFmt   = "failed to scan scope item: %w"
	errFailedUpdateScopeItemFmt = "failed to update scope item: %w"
	errFailedDeleteScopeItemFmt = "failed to delete scope item: %w"

	errFailedCreateRequestFmt = "failed to create request: %w"
	errFailedGetRequestFmt    = "failed to get request: %w"
	errFailedListRequestsFmt  = "failed to list requests: %w"
	errFailedScanRequestFmt   = "failed to scan request: %w"
	errFailedUpdateRequestFmt = "failed to update request: %w"
	errFailedDeleteRequestFmt = "failed to delete request: %w"

	errFailedCreateChangeOrderFmt = "failed to create change order: %w"
	errFailedGetChangeOrderFmt    = "failed to get change order: %w"
	errFailedListChangeOrdersFmt  = "failed to list change orders: %w"
	errFailedScanChangeOrderFmt   = "failed to scan change order: %w"
	errFailedUpdateChangeOrderFmt = "failed to update change order: %w"
	errFailedDeleteChangeOrderFmt = "failed to delete change order: %w"

	errFailedCreateShareLinkFmt = "failed to create share link: %w"
	errFailedGetShareLinkFmt    = "failed to get share link: %w"
	errFailedListShareLinksFmt  = "failed to list share links: %w"
	errFailedScanShareLinkFmt   = "failed to scan share link: %w"
	errFailedRevokeShareLinkFmt = "failed to revoke share link: %w"
	errFailedRecordViewFmt      = "failed to record share link view: %w"

	errFailedDashboardCountsFmt = "failed to load dashboard counts: %w"

	errFailedCreateWalletFmt = "failed to create wallet: %w"
	errFailedGetWalletFmt    = "failed to get wallet: %w"
	errFailedListWalletsFmt  = "failed to list wallets: %w"
	errFailedScanWalletFmt   = "failed to scan wallet: %w"
	errFailedUpdateWalletFmt = "failed to update wallet: %w"
	errFailedDeleteWalletFmt = "failed to delete wallet: %w"

	errFailedCreatePaymentLinkFmt     = "failed to create payment link: %w"
	errFailedGetPaymentLinkFmt        = "failed to get payment link: %w"
	errFailedListPaymentLinksFmt      = "failed to list payment links: %w"
	errFailedScanPaymentLinkFmt       = "failed to scan payment link: %w"
	errFailedDeactivatePaymentLinkFmt = "failed to deactivate payment link: %w"

	errFailedUpsertUserFmt     = "failed to upsert user: %w"
	errFailedGetUserFmt        = "failed to get user: %w"
	errFailedDeactivateUserFmt = "failed to deactivate user: %w"
)

var (
	errFailedParseDatabaseConfig  = func(err error) error { return fmt.Errorf(errFailedParseDatabaseConfigFmt, err) }
	errFailedCreateConnectionPool = func(err error) error { return fmt.Errorf(errFailedCreateConnectionPoolFmt, err) }
	errFailedPingDatabase         = func(err error) error { return fmt.Errorf(errFailedPingDatabaseFmt, err) }
	errFailedStartTransaction     = func(err error) error { return fmt.Errorf(errFailedStartTransactionFmt, err) }
	errFailedCommitTransaction    = func(err error) error { return fmt.Errorf(errFailedCommitTransactionFmt, err) }

	errFailedCreateProject = func(err error) error { return fmt.Errorf(errFailedCreateProjectFmt, err) }
	errFailedGetProject    = func(err error) error { return fmt.Errorf(errFailedGetProjectFmt, err) }
	errFailedListProjects  = func(err error) error { return fmt.Errorf(errFailedListProjectsFmt, err) }
	errFailedScanProject   = func(err error) error { return fmt.Errorf(errFailedScanProjectFmt, err) }
	errFailedUpdateProject = func(err error) error { return fmt.Errorf(errFailedUpdateProjectFmt, err) }
	errFailedDeleteProject = func(err error) error { return fmt.Errorf(errFailedDeleteProjectFmt, err) }

	errFailedCreateClient = func(err error) error { return fmt.Errorf(errFailedCreateClientFmt, err) }
	errFailedGetClient    = func(err error) error { return fmt.Errorf(errFailedGetClientFmt, err) }
	errFailedUpdateClient = func(err error) error { return fmt.Errorf(errFailedUpdateClientFmt, err) }

	errFailedCreateScopeItem = func(err error) error { return fmt.Errorf(errFailedCreateScopeItemFmt, err) }
	errFailedListScopeItems  = func(err error) error { return fmt.Errorf(errFailedListScopeItemsFmt, err) }
	errFailedScanScopeItem   = func(err error) error { return fmt.Errorf(errFailedScanScopeItemFmt, err) }
	errFailedUpdateScopeItem = func(err error) error { return fmt.Errorf(errFailedUpdateScopeItemFmt, err) }
	errFailedDeleteScopeItem = func(err error) error { return fmt.Errorf(errFailedDeleteScopeItemFmt, err) }

	errFailedCreateRequest = func(err error) error { return fmt.Errorf(errFailedCreateRequestFmt, err) }
	errFailedGetRequest    = func(err error) error { return fmt.Errorf(errFailedGetRequestFmt, err) }
	errFailedListRequests  = func(err error) error { return fmt.Errorf(errFailedListRequestsFmt, err) }
	errFailedScanRequest   = func(err error) error { return fmt.Errorf(errFailedScanRequestFmt, err) }
	errFailedUpdateRequest = func(err error) error { return fmt.Errorf(errFailedUpdateRequestFmt, err) }
	errFailedDeleteRequest = func(err error) error { return fmt.Errorf(errFailedDeleteRequestFmt, err) }

	errFailedCreateChangeOrder = func(err error) error { return fmt.Errorf(errFailedCreateChangeOrderFmt, err) }
	errFailedGetChangeOrder    = func(err error) error { return fmt.Errorf(errFailedGetChangeOrderFmt, err) }
	errFailedListChangeOrders  = func(err error) error { return fmt.Errorf(errFailedListChangeOrdersFmt, err) }
	errFailedScanChangeOrder   = func(err error) error { return fmt.Errorf(errFailedScanChangeOrderFmt, err) }
	errFailedUpdateChangeOrder = func(err error) error { return fmt.Errorf(errFailedUpdateChangeOrderFmt, err) }
	errFailedDeleteChangeOrder = func(err error) error { return fmt.Errorf(errFailedDeleteChangeOrderFmt, err) }

	errFailedCreateShareLink = func(err error) error { return fmt.Errorf(errFailedCreateShareLinkFmt, err) }
	errFailedGetShareLink    = func(err error) error { return fmt.Errorf(errFailedGetShareLinkFmt, err) }
	errFailedListShareLinks  = func(err error) error { return fmt.Errorf(errFailedListShareLinksFmt, err) }
	errFailedScanShareLink   = func(err error) error { return fmt.Errorf(errFailedScanShareLinkFmt, err) }
	errFailedRevokeShareLink = func(err error) error { return fmt.Errorf(errFailedRevokeShareLinkFmt, err) }
	errFailedRecordView      = func(err error) error { return fmt.Errorf(errFailedRecordViewFmt, err) }

	errFailedDashboardCounts = func(err error) error { return fmt.Errorf(errFailedDashboardCountsFmt, err) }

	errFailedCreateWallet = func(err error) error { return fmt.Errorf(errFailedCreateWalletFmt, err) }
	errFailedGetWallet    = func(err error) error { return fmt.Errorf(errFailedGetWalletFmt, err) }
	errFailedListWallets  = func(err error) error { return fmt.Errorf(errFailedListWalletsFmt, err) }
	errFailedScanWallet   = func(err error) error { return fmt.Errorf(errFailedScanWalletFmt, err) }
	errFailedUpdateWallet = func(err error) error { return fmt.Errorf(errFailedUpdateWalletFmt, err) }
	errFailedDeleteWallet = func(err error) error { return fmt.Errorf(errFailedDeleteWalletFmt, err) }

	errFailedCreatePaymentLink     = func(err error) error { return fmt.Errorf(errFailedCreatePaymentLinkFmt, err) }
	errFailedGetPaymentLink        = func(err error) error { return fmt.Errorf(errFailedGetPaymentLinkFmt, err) }
	errFailedListPaymentLinks      = func(err error) error { return fmt.Errorf(errFailedListPaymentLinksFmt, err) }
	errFailedScanPaymentLink       = func(err error) error { return fmt.Errorf(errFailedScanPaymentLinkFmt, err) }
	errFailedDeactivatePaymentLink = func(err error) error { return fmt.Errorf(errFailedDeactivatePaymentLinkFmt, err) }

	errFailedUpsertUser     = func(err error) error { return fmt.Errorf(errFailedUpsertUserFmt, err) }
	errFailedGetUser        = func(err error) error { return fmt.Errorf(errFailedGetUserFmt, err) }
	errFailedDeactivateUser = func(err error) error { return fmt.Errorf(errFailedDeactivateUserFmt, err) }
)
