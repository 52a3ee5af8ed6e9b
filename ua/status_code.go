// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"fmt"

	"github.com/pkg/errors"
)

// StatusCode is the result of a service or operation.
// StatusCode implements error, so operations return it directly. Good is never returned as an error.
type StatusCode uint32

const (
	// Good - The operation completed successfully.
	Good StatusCode = 0x00000000
	// Uncertain - The operation completed however its outputs may not be usable.
	Uncertain StatusCode = 0x40000000
	// Bad - The operation failed.
	Bad StatusCode = 0x80000000
	// BadUnexpectedError - An unexpected error occurred.
	BadUnexpectedError StatusCode = 0x80010000
	// BadInternalError - An internal error occurred as a result of a programming or configuration error.
	BadInternalError StatusCode = 0x80020000
	// BadOutOfMemory - Not enough memory to complete the operation.
	BadOutOfMemory StatusCode = 0x80030000
	// BadResourceUnavailable - An operating system resource is not available.
	BadResourceUnavailable StatusCode = 0x80040000
	// BadCommunicationError - A low level communication error occurred.
	BadCommunicationError StatusCode = 0x80050000
	// BadEncodingError - Encoding halted because of invalid data in the objects being serialized.
	BadEncodingError StatusCode = 0x80060000
	// BadDecodingError - Decoding halted because of invalid data in the stream.
	BadDecodingError StatusCode = 0x80070000
	// BadEncodingLimitsExceeded - The message encoding/decoding limits imposed by the stack have been exceeded.
	BadEncodingLimitsExceeded StatusCode = 0x80080000
	// BadTimeout - The operation timed out.
	BadTimeout StatusCode = 0x800A0000
	// BadServiceUnsupported - The server does not support the requested service.
	BadServiceUnsupported StatusCode = 0x800B0000
	// BadShutdown - The operation was cancelled because the application is shutting down.
	BadShutdown StatusCode = 0x800C0000
	// BadServerHalted - The server has stopped and cannot process any requests.
	BadServerHalted StatusCode = 0x800E0000
	// BadNothingToDo - There was nothing to do because the client passed a list of operations with no elements.
	BadNothingToDo StatusCode = 0x800F0000
	// BadTooManyOperations - The request could not be processed because it specified too many operations.
	BadTooManyOperations StatusCode = 0x80100000
	// BadUserAccessDenied - User does not have permission to perform the requested operation.
	BadUserAccessDenied StatusCode = 0x801F0000
	// BadNodeIDInvalid - The syntax of the node id is not valid.
	BadNodeIDInvalid StatusCode = 0x80330000
	// BadNodeIDUnknown - The node id refers to a node that does not exist in the server address space.
	BadNodeIDUnknown StatusCode = 0x80340000
	// BadAttributeIDInvalid - The attribute is not supported for the specified Node.
	BadAttributeIDInvalid StatusCode = 0x80350000
	// BadNotReadable - The access level does not allow reading or subscribing to the Node.
	BadNotReadable StatusCode = 0x803A0000
	// BadNotWritable - The access level does not allow writing to the Node.
	BadNotWritable StatusCode = 0x803B0000
	// BadReferenceTypeIDInvalid - The reference type id does not refer to a valid reference type node.
	BadReferenceTypeIDInvalid StatusCode = 0x804C0000
	// BadSecurityPolicyRejected - The security policy does not meet the requirements set by the server.
	BadSecurityPolicyRejected StatusCode = 0x80550000
	// BadParentNodeIDInvalid - The parent node id does not to refer to a valid node.
	BadParentNodeIDInvalid StatusCode = 0x805B0000
	// BadReferenceNotAllowed - The reference could not be created because it violates constraints imposed by the data model.
	BadReferenceNotAllowed StatusCode = 0x805C0000
	// BadNodeIDRejected - The requested node id was reject because it was either invalid or server does not allow node ids to be specified by the client.
	BadNodeIDRejected StatusCode = 0x805D0000
	// BadNodeIDExists - The requested node id is already used by another node.
	BadNodeIDExists StatusCode = 0x805E0000
	// BadNodeClassInvalid - The node class is not valid.
	BadNodeClassInvalid StatusCode = 0x805F0000
	// BadBrowseNameInvalid - The browse name is invalid.
	BadBrowseNameInvalid StatusCode = 0x80600000
	// BadBrowseNameDuplicated - The browse name is not unique among nodes that share the same relationship with the parent.
	BadBrowseNameDuplicated StatusCode = 0x80610000
	// BadNodeAttributesInvalid - The node attributes are not valid for the node class.
	BadNodeAttributesInvalid StatusCode = 0x80620000
	// BadTypeDefinitionInvalid - The type definition node id does not reference an appropriate type node.
	BadTypeDefinitionInvalid StatusCode = 0x80630000
	// BadTypeMismatch - The value supplied for the attribute is not of the same type as the attribute's value.
	BadTypeMismatch StatusCode = 0x80740000
	// BadTCPMessageTypeInvalid - The type of the message specified in the header invalid.
	BadTCPMessageTypeInvalid StatusCode = 0x807E0000
	// BadTCPMessageTooLarge - The size of the message chunk specified in the header is too large.
	BadTCPMessageTooLarge StatusCode = 0x80800000
	// BadTCPInternalError - An internal error occurred.
	BadTCPInternalError StatusCode = 0x80820000
	// BadTCPEndpointURLInvalid - The server does not recognize the QueryString specified.
	BadTCPEndpointURLInvalid StatusCode = 0x80830000
	// BadSecureChannelClosed - The secure channel has been closed.
	BadSecureChannelClosed StatusCode = 0x80860000
	// BadConnectionRejected - Could not establish a network connection to remote server.
	BadConnectionRejected StatusCode = 0x80AC0000
	// BadConfigurationError - There is a problem with the configuration that affects the usefulness of the value.
	BadConfigurationError StatusCode = 0x80890000
	// BadInvalidArgument - One or more arguments are invalid.
	BadInvalidArgument StatusCode = 0x80AB0000
	// BadInvalidState - The operation cannot be completed because the object is closed, uninitialized or in some other invalid state.
	BadInvalidState StatusCode = 0x80AF0000
	// BadProtocolVersionUnsupported - The applications do not have compatible protocol versions.
	BadProtocolVersionUnsupported StatusCode = 0x80BE0000
)

// Error returns the StatusCode message.
func (c StatusCode) Error() string {
	switch c {
	case Good:
		return "The operation completed successfully."
	case Uncertain:
		return "The operation completed however its outputs may not be usable."
	case Bad:
		return "The operation failed."
	case BadUnexpectedError:
		return "An unexpected error occurred."
	case BadInternalError:
		return "An internal error occurred as a result of a programming or configuration error."
	case BadOutOfMemory:
		return "Not enough memory to complete the operation."
	case BadResourceUnavailable:
		return "An operating system resource is not available."
	case BadCommunicationError:
		return "A low level communication error occurred."
	case BadEncodingError:
		return "Encoding halted because of invalid data in the objects being serialized."
	case BadDecodingError:
		return "Decoding halted because of invalid data in the stream."
	case BadEncodingLimitsExceeded:
		return "The message encoding/decoding limits imposed by the stack have been exceeded."
	case BadTimeout:
		return "The operation timed out."
	case BadServiceUnsupported:
		return "The server does not support the requested service."
	case BadShutdown:
		return "The operation was cancelled because the application is shutting down."
	case BadServerHalted:
		return "The server has stopped and cannot process any requests."
	case BadNothingToDo:
		return "There was nothing to do because the client passed a list of operations with no elements."
	case BadTooManyOperations:
		return "The request could not be processed because it specified too many operations."
	case BadUserAccessDenied:
		return "User does not have permission to perform the requested operation."
	case BadNodeIDInvalid:
		return "The syntax of the node id is not valid."
	case BadNodeIDUnknown:
		return "The node id refers to a node that does not exist in the server address space."
	case BadAttributeIDInvalid:
		return "The attribute is not supported for the specified Node."
	case BadNotReadable:
		return "The access level does not allow reading or subscribing to the Node."
	case BadNotWritable:
		return "The access level does not allow writing to the Node."
	case BadReferenceTypeIDInvalid:
		return "The reference type id does not refer to a valid reference type node."
	case BadSecurityPolicyRejected:
		return "The security policy does not meet the requirements set by the server."
	case BadParentNodeIDInvalid:
		return "The parent node id does not to refer to a valid node."
	case BadReferenceNotAllowed:
		return "The reference could not be created because it violates constraints imposed by the data model."
	case BadNodeIDRejected:
		return "The requested node id was reject because it was either invalid or server does not allow node ids to be specified by the client."
	case BadNodeIDExists:
		return "The requested node id is already used by another node."
	case BadNodeClassInvalid:
		return "The node class is not valid."
	case BadBrowseNameInvalid:
		return "The browse name is invalid."
	case BadBrowseNameDuplicated:
		return "The browse name is not unique among nodes that share the same relationship with the parent."
	case BadNodeAttributesInvalid:
		return "The node attributes are not valid for the node class."
	case BadTypeDefinitionInvalid:
		return "The type definition node id does not reference an appropriate type node."
	case BadTypeMismatch:
		return "The value supplied for the attribute is not of the same type as the attribute's value."
	case BadTCPMessageTypeInvalid:
		return "The type of the message specified in the header invalid."
	case BadTCPMessageTooLarge:
		return "The size of the message chunk specified in the header is too large."
	case BadTCPInternalError:
		return "An internal error occurred."
	case BadTCPEndpointURLInvalid:
		return "The server does not recognize the QueryString specified."
	case BadSecureChannelClosed:
		return "The secure channel has been closed."
	case BadConnectionRejected:
		return "Could not establish a network connection to remote server."
	case BadConfigurationError:
		return "There is a problem with the configuration that affects the usefulness of the value."
	case BadInvalidArgument:
		return "One or more arguments are invalid."
	case BadInvalidState:
		return "The operation cannot be completed because the object is closed, uninitialized or in some other invalid state."
	case BadProtocolVersionUnsupported:
		return "The applications do not have compatible protocol versions."
	default:
		return fmt.Sprintf("An unknown error occurred (0x%08X).", uint32(c))
	}
}

// IsGood returns true if the StatusCode is good.
func (c StatusCode) IsGood() bool {
	return (uint32(c) & 0xC0000000) == 0
}

// IsBad returns true if the StatusCode is bad.
func (c StatusCode) IsBad() bool {
	return (uint32(c) & 0x80000000) != 0
}

// IsUncertain returns true if the StatusCode is uncertain.
func (c StatusCode) IsUncertain() bool {
	return (uint32(c) & 0x40000000) != 0
}

// ToStatusCode classifies an error returned by this module.
// nil is Good, a StatusCode (possibly wrapped) is itself, anything else is BadInternalError.
func ToStatusCode(err error) StatusCode {
	if err == nil {
		return Good
	}
	if c, ok := errors.Cause(err).(StatusCode); ok {
		return c
	}
	return BadInternalError
}
