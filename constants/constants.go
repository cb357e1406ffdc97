/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package constants

import "github.com/coinbase-samples/ironfix-go/fixcore"

// --- Message Types ---
const (
	// Admin Messages
	MsgTypeHeartbeat        = "0" // Heartbeat
	MsgTypeTestRequest      = "1" // Test Request
	MsgTypeResendRequest    = "2" // Resend Request
	MsgTypeReject           = "3" // Session-level Reject
	MsgTypeSequenceReset    = "4" // Sequence Reset
	MsgTypeLogout           = "5" // Logout
	MsgTypeLogon            = "A" // Logon
	MsgTypeBusinessReject   = "j" // Business Message Reject
	MsgTypeMarketDataReject = "Y" // Market Data Request Reject

	// Market Data Messages
	MsgTypeMarketDataRequest     = "V" // Market Data Request
	MsgTypeMarketDataSnapshot    = "W" // Market Data Snapshot/Full Refresh
	MsgTypeMarketDataIncremental = "X" // Market Data Incremental Refresh

	// Order Entry Messages
	MsgTypeNewOrderSingle       = "D" // New Order Single
	MsgTypeOrderCancelRequest   = "F" // Order Cancel Request
	MsgTypeOrderCancelReplace   = "G" // Order Cancel/Replace Request
	MsgTypeOrderStatusRequest   = "H" // Order Status Request
	MsgTypeExecutionReport      = "8" // Execution Report
	MsgTypeOrderCancelReject    = "9" // Order Cancel Reject
	MsgTypeQuoteRequest         = "R" // Quote Request
	MsgTypeQuote                = "S" // Quote
	MsgTypeQuoteAcknowledgement = "b" // Quote Acknowledgement
)

// --- Protocol Constants ---
const (
	FixTimeFormat     = "20060102-15:04:05.000"
	FixBeginString    = "FIXT.1.1"
	EncryptMethodNone = "0"
	HeartBtInterval   = "30"
	DropCopyFlagYes   = "Y"
	MsgSeqNumInit     = "1"
)

// --- Subscription Request Types ---
const (
	SubscriptionRequestTypeSnapshot    = "0" // Snapshot
	SubscriptionRequestTypeSubscribe   = "1" // Subscribe
	SubscriptionRequestTypeUnsubscribe = "2" // Unsubscribe
)

// --- MD Entry Types ---
const (
	MdEntryTypeBid    = "0" // Bid
	MdEntryTypeOffer  = "1" // Offer/Ask
	MdEntryTypeTrade  = "2" // Trade
	MdEntryTypeOpen   = "4" // Open
	MdEntryTypeClose  = "5" // Close
	MdEntryTypeHigh   = "7" // High
	MdEntryTypeLow    = "8" // Low
	MdEntryTypeVolume = "B" // Volume
)

// --- MD Update Types ---
const (
	MdUpdateTypeFullRefresh = "0" // Full refresh
	MdUpdateTypeIncremental = "1" // Incremental refresh
)

// --- Order Types (Tag 40) ---
const (
	OrdTypeMarket           = "1" // Market
	OrdTypeLimit            = "2" // Limit
	OrdTypeStop             = "3" // Stop
	OrdTypeStopLimit        = "4" // Stop Limit
	OrdTypePreviouslyQuoted = "D" // Previously Quoted (for RFQ)
)

// --- Side (Tag 54) ---
const (
	SideBuy  = "1" // Buy
	SideSell = "2" // Sell
)

// --- Time In Force (Tag 59) ---
const (
	TimeInForceGTC = "1" // Good Till Cancel
	TimeInForceIOC = "3" // Immediate or Cancel
	TimeInForceFOK = "4" // Fill or Kill
	TimeInForceGTD = "6" // Good Till Date
)

// --- Target Strategy (Tag 847) ---
const (
	TargetStrategyLimit     = "L"  // Limit order
	TargetStrategyMarket    = "M"  // Market order
	TargetStrategyTWAP      = "T"  // TWAP order
	TargetStrategyVWAP      = "V"  // VWAP order
	TargetStrategyStopLimit = "SL" // Stop Limit order
	TargetStrategyRFQ       = "R"  // RFQ order
)

// --- Order Status (Tag 39) ---
const (
	OrdStatusNew             = "0" // New
	OrdStatusPartiallyFilled = "1" // Partially Filled
	OrdStatusFilled          = "2" // Filled
	OrdStatusDoneForDay      = "3" // Done for Day
	OrdStatusCanceled        = "4" // Canceled
	OrdStatusReplaced        = "5" // Replaced
	OrdStatusPendingCancel   = "6" // Pending Cancel
	OrdStatusStopped         = "7" // Stopped
	OrdStatusRejected        = "8" // Rejected
	OrdStatusSuspended       = "9" // Suspended
	OrdStatusPendingNew      = "A" // Pending New
	OrdStatusCalculated      = "B" // Calculated
	OrdStatusExpired         = "C" // Expired
	OrdStatusAcceptedBidding = "D" // Accepted for Bidding
	OrdStatusPendingReplace  = "E" // Pending Replace
)

// --- Execution Type (Tag 150) ---
const (
	ExecTypeNew           = "0" // New Order
	ExecTypePartialFill   = "1" // Partial Fill
	ExecTypeFilled        = "2" // Filled
	ExecTypeDone          = "3" // Done
	ExecTypeCanceled      = "4" // Canceled
	ExecTypePendingCancel = "6" // Pending Cancel
	ExecTypeStopped       = "7" // Stopped
	ExecTypeRejected      = "8" // Rejected
	ExecTypePendingNew    = "A" // Pending New
	ExecTypeExpired       = "C" // Expired
	ExecTypeRestated      = "D" // Restated
	ExecTypeOrderStatus   = "I" // Order Status
)

// --- Order Reject Reason (Tag 103) ---
const (
	OrdRejReasonBrokerOption   = "0"  // Broker option
	OrdRejReasonUnknownSymbol  = "1"  // Unknown symbol
	OrdRejReasonExchangeClosed = "2"  // Exchange closed
	OrdRejReasonExceedsLimit   = "3"  // Order exceeds limit
	OrdRejReasonTooLate        = "4"  // Too late to enter
	OrdRejReasonUnknownOrder   = "5"  // Unknown Order
	OrdRejReasonDuplicateOrder = "6"  // Duplicate Order
	OrdRejReasonOther          = "99" // Other
)

// --- Cancel Reject Response To (Tag 434) ---
const (
	CxlRejResponseToCancel  = "1" // Order Cancel Request (F)
	CxlRejResponseToReplace = "2" // Order Cancel/Replace Request (G)
)

// --- Quote Acknowledgement Status (Tag 297) ---
const (
	QuoteAckStatusRejected = "5" // Rejected
)

// --- Quote Reject Reason (Tag 300) ---
const (
	QuoteRejectReasonUnknownSymbol  = "1"  // Unknown symbol
	QuoteRejectReasonExchangeClosed = "2"  // Exchange closed
	QuoteRejectReasonExceedsLimit   = "3"  // Quote Request exceeds limit
	QuoteRejectReasonDuplicate      = "6"  // Duplicate Quote
	QuoteRejectReasonInvalidPrice   = "8"  // Invalid price
	QuoteRejectReasonOther          = "99" // Other
)

// --- Session Reject Reason (Tag 373) ---
const (
	SessionRejectReasonInvalidTag          = "0"
	SessionRejectReasonRequiredTagMissing  = "1"
	SessionRejectReasonTagNotDefined       = "2"
	SessionRejectReasonUndefinedTag        = "3"
	SessionRejectReasonTagWithoutValue     = "4"
	SessionRejectReasonValueOutOfRange     = "5"
	SessionRejectReasonIncorrectDataFormat = "6"
	SessionRejectReasonDecryptionProblem   = "7"
	SessionRejectReasonSignatureProblem    = "8"
	SessionRejectReasonCompIDProblem       = "9"
	SessionRejectReasonSendingTimeAccuracy = "10"
	SessionRejectReasonInvalidMsgType      = "11"
)

// --- Business Reject Reason (Tag 380) ---
const (
	BusinessRejectReasonOther               = "0"
	BusinessRejectReasonUnknownID           = "1"
	BusinessRejectReasonUnknownSecurity     = "2"
	BusinessRejectReasonUnsupportedMsgType  = "3"
	BusinessRejectReasonApplicationNotAvail = "4"
	BusinessRejectReasonCondRequiredMissing = "5"
	BusinessRejectReasonNotAuthorized       = "6"
)

// --- Execution Instruction (Tag 18) ---
// Per Coinbase Prime FIX API: https://docs.cdp.coinbase.com/prime/fix-api/order-entry-messages
// ExecInst must be "A" for Post Only orders (maker-only).
const (
	ExecInstPostOnly = "A" // Post Only (maker-only order)
)

// --- Handling Instruction (Tag 21) ---
const (
	HandlInstAutomatedNoIntervention = "1"
)

// --- Commission Type (Tag 13) ---
const (
	CommTypeAbsolute = "3" // Absolute (fixed amount)
)

// --- Misc Fee Type (Tag 139) ---
// Per Coinbase Prime FIX API Execution Report:
// https://docs.cdp.coinbase.com/prime/fix-api/order-entry-messages
// MiscFees is a repeating group with Tags 136 (count), 137 (amt), 138 (curr), 139 (type).
const (
	MiscFeeTypeFinancing  = "1" // Financing Fee
	MiscFeeTypeClientComm = "2" // Client Commission
	MiscFeeTypeCESComm    = "3" // CES Commission
	MiscFeeTypeVenueFee   = "4" // Venue Fee
)

// --- Standard FIX Tags ---
var (
	TagAccount        = fixcore.FieldTag(1)
	TagAvgPx          = fixcore.FieldTag(6)
	TagBeginSeqNo     = fixcore.FieldTag(7)
	TagBeginString    = fixcore.FieldTag(8)
	TagBodyLength     = fixcore.FieldTag(9)
	TagCheckSum       = fixcore.FieldTag(10)
	TagClOrdID        = fixcore.FieldTag(11)
	TagCommission     = fixcore.FieldTag(12)
	TagCommType       = fixcore.FieldTag(13)
	TagCumQty         = fixcore.FieldTag(14)
	TagEndSeqNo       = fixcore.FieldTag(16)
	TagExecID         = fixcore.FieldTag(17)
	TagExecInst       = fixcore.FieldTag(18)
	TagHandlInst      = fixcore.FieldTag(21)
	TagLastMkt        = fixcore.FieldTag(30)
	TagLastPx         = fixcore.FieldTag(31)
	TagLastShares     = fixcore.FieldTag(32)
	TagMsgSeqNum      = fixcore.FieldTag(34)
	TagMsgType        = fixcore.FieldTag(35)
	TagNewSeqNo       = fixcore.FieldTag(36)
	TagOrderID        = fixcore.FieldTag(37)
	TagOrderQty       = fixcore.FieldTag(38)
	TagOrdStatus      = fixcore.FieldTag(39)
	TagOrdType        = fixcore.FieldTag(40)
	TagOrigClOrdID    = fixcore.FieldTag(41)
	TagPossDupFlag    = fixcore.FieldTag(43)
	TagPrice          = fixcore.FieldTag(44)
	TagRefSeqNum      = fixcore.FieldTag(45)
	TagSenderCompId   = fixcore.FieldTag(49)
	TagSenderSubID    = fixcore.FieldTag(50)
	TagSendingTime    = fixcore.FieldTag(52)
	TagSide           = fixcore.FieldTag(54)
	TagSymbol         = fixcore.FieldTag(55)
	TagText           = fixcore.FieldTag(58)
	TagTimeInForce    = fixcore.FieldTag(59)
	TagTransactTime   = fixcore.FieldTag(60)
	TagTargetCompId   = fixcore.FieldTag(56)
	TagValidUntilTime = fixcore.FieldTag(62)
	TagHmac           = fixcore.FieldTag(96)
	TagEncryptMethod  = fixcore.FieldTag(98)
	TagStopPx         = fixcore.FieldTag(99)
	TagOrdRejReason   = fixcore.FieldTag(103)
	TagCxlRejReason   = fixcore.FieldTag(102)
	TagHeartBtInt     = fixcore.FieldTag(108)
	TagTestReqID      = fixcore.FieldTag(112)
	TagQuoteID        = fixcore.FieldTag(117)
	TagGapFillFlag    = fixcore.FieldTag(123)
	TagExpireTime     = fixcore.FieldTag(126)
	TagQuoteReqID     = fixcore.FieldTag(131)
	TagBidPx          = fixcore.FieldTag(132)
	TagOfferPx        = fixcore.FieldTag(133)
	TagBidSize        = fixcore.FieldTag(134)
	TagOfferSize      = fixcore.FieldTag(135)
	TagNoMiscFees     = fixcore.FieldTag(136)
	TagMiscFeeAmt     = fixcore.FieldTag(137)
	TagMiscFeeCurr    = fixcore.FieldTag(138)
	TagMiscFeeType    = fixcore.FieldTag(139)
	TagNoRelatedSym   = fixcore.FieldTag(146)
	TagExecType       = fixcore.FieldTag(150)
	TagLeavesQty      = fixcore.FieldTag(151)
	TagCashOrderQty   = fixcore.FieldTag(152)
	TagEffectiveTime  = fixcore.FieldTag(168)
	TagMaxShow        = fixcore.FieldTag(210)

	// Market Data Tags
	TagMdReqId                 = fixcore.FieldTag(262)
	TagSubscriptionRequestType = fixcore.FieldTag(263)
	TagMarketDepth             = fixcore.FieldTag(264)
	TagMdUpdateType            = fixcore.FieldTag(265)
	TagNoMdEntryTypes          = fixcore.FieldTag(267)
	TagNoMdEntries             = fixcore.FieldTag(268)
	TagMdEntryType             = fixcore.FieldTag(269)
	TagMdEntryPx               = fixcore.FieldTag(270)
	TagMdEntrySize             = fixcore.FieldTag(271)
	TagMdEntryTime             = fixcore.FieldTag(273)
	TagMdReqRejReason          = fixcore.FieldTag(281)
	TagMdEntryPositionNo       = fixcore.FieldTag(290)

	// Quote Tags
	TagQuoteAckStatus    = fixcore.FieldTag(297)
	TagQuoteRejectReason = fixcore.FieldTag(300)

	// Reject Tags
	TagRefTagID             = fixcore.FieldTag(371)
	TagRefMsgType           = fixcore.FieldTag(372)
	TagSessionRejectReason  = fixcore.FieldTag(373)
	TagBusinessRejectReason = fixcore.FieldTag(380)

	// Order Tags
	TagCxlRejResponseTo  = fixcore.FieldTag(434)
	TagUsername          = fixcore.FieldTag(553)
	TagPassword          = fixcore.FieldTag(554)
	TagTargetStrategy    = fixcore.FieldTag(847)
	TagParticipationRate = fixcore.FieldTag(849)
	TagDefaultApplVerId  = fixcore.FieldTag(1137)
	TagResetSeqNumFlag   = fixcore.FieldTag(141)

	// Coinbase Custom Tags
	TagAggressorSide = fixcore.FieldTag(2446)
	TagDropCopyFlag  = fixcore.FieldTag(9406)
	TagAccessKey     = fixcore.FieldTag(9407)
	TagFilledAmt     = fixcore.FieldTag(8002)
	TagNetAvgPrice   = fixcore.FieldTag(8006)
	TagIsRaiseExact  = fixcore.FieldTag(8999)
)

// --- MD Rejection Reasons ---
const (
	MdReqRejReasonUnknownSymbol              = "0"
	MdReqRejReasonDuplicateMdReqId           = "1"
	MdReqRejReasonInsufficientBandwidth      = "2"
	MdReqRejReasonInsufficientPermission     = "3"
	MdReqRejReasonInvalidSubscriptionReqType = "4"
	MdReqRejReasonInvalidMarketDepth         = "5"
	MdReqRejReasonUnsupportedMdUpdateType    = "6"
	MdReqRejReasonOther                      = "7"
	MdReqRejReasonUnsupportedMdEntryType     = "8"
)
