package messaging

// Well-known request/reply queue names, one per domain fact type. Each owner
// service subscribes to its queue and replies on the per-call inbox.
const (
	// Inventory service
	QueueGetReceives  = "rpc_get_receives"
	QueueGetTransfers = "rpc_get_transfers"

	// Manufacturing service
	QueueGetProductionRequests = "rpc_get_production_requests"
	QueueGetInspectionProducts = "rpc_get_inspection_products"

	// SRM: procurement and contract services
	QueueGetRFQs               = "rpc_get_rfqs"
	QueueGetLetterOfAgreements = "rpc_get_letter_of_agreements"
	QueueGetContracts          = "rpc_get_contracts"

	// CRM: requisition service
	QueueGetRequisitions = "rpc_get_requisitions"

	// Risk service liveness queue, answered by this service so peers can
	// probe broker reachability with the same request/reply exchange.
	QueueRiskPing = "rpc_risk_ping"
)

// QueueGroupRisk load-balances inbound requests across risk service instances.
const QueueGroupRisk = "risk"

// Domains served by the gateways, used for logging and metric labels.
const (
	DomainInventory     = "inventory"
	DomainManufacturing = "manufacturing"
	DomainProcurement   = "procurement"
	DomainContract      = "contract"
	DomainRequisition   = "requisition"
)
