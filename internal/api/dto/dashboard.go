package dto

import (
	"github.com/shopspring/decimal"
)

// StatisticsData holds today's counters with change rates vs yesterday.
// Change rates are whole percentages; a zero yesterday baseline yields 100
// when today is positive and 0 otherwise.
type StatisticsData struct {
	NewCustomerCount        int             `json:"new_customer_count"`
	CustomerChange          int             `json:"customer_change"`
	NewLeadCount            int             `json:"new_lead_count"`
	LeadChange              int             `json:"lead_change"`
	NewContractCount        int             `json:"new_contract_count"`
	ContractChange          int             `json:"contract_change"`
	ContractAmount          decimal.Decimal `json:"contract_amount"`
	AmountChange            int             `json:"amount_change"`
	ApprovedContractCount   int             `json:"approved_contract_count"`
	ApprovedContractChange  int             `json:"approved_contract_change"`
	RejectedContractCount   int             `json:"rejected_contract_count"`
	RejectedContractChange  int             `json:"rejected_contract_change"`
}

// TrendData holds per-day series for the last seven days, oldest first
type TrendData struct {
	Dates        []string `json:"dates"`
	CustomerData []int    `json:"customer_data"`
	LeadData     []int    `json:"lead_data"`
	ContractData []int    `json:"contract_data"`
	ApprovedData []int    `json:"approved_data"`
	RejectedData []int    `json:"rejected_data"`
}

type DashboardResponse struct {
	Statistics *StatisticsData `json:"statistics"`
	Trend      *TrendData      `json:"trend"`
}
